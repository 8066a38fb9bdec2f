// Package keyringx is a minimal abstraction over the OS keyring, used to
// optionally remember a user's vault password between invocations. The
// interface exists so tests and the CLI can inject a fake.
package keyringx

import "github.com/zalando/go-keyring"

const serviceName = "xpost"

// API is the minimal keyring surface the CLI needs. account is the vault
// username; the stored value is the vault password.
type API interface {
	Get(account string) (string, error)
	Set(account, value string) error
	Delete(account string) error
}

// ErrNotFound is returned by Get when no secret is stored for the account.
var ErrNotFound = keyring.ErrNotFound

// OS is the default implementation backed by the platform keyring
// (Keychain, Secret Service, Credential Manager).
type OS struct{}

func (OS) Get(account string) (string, error) {
	return keyring.Get(serviceName, account)
}

func (OS) Set(account, value string) error {
	return keyring.Set(serviceName, account, value)
}

func (OS) Delete(account string) error {
	return keyring.Delete(serviceName, account)
}
