// Package cli implements the xpost command tree and all interactive
// credential collection. Prompting lives here; encryption and persistence
// live in internal/vault, so the core stays testable without a terminal.
package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/xpost/internal/common"
	"github.com/dmitrijs2005/xpost/internal/config"
	"github.com/dmitrijs2005/xpost/internal/keyringx"
	"github.com/dmitrijs2005/xpost/internal/logging"
	"github.com/dmitrijs2005/xpost/internal/models"
	"github.com/dmitrijs2005/xpost/internal/vault"
)

// App wires the command tree to its collaborators. Commands read input from
// reader, write to out and call into the vault; every dependency is
// injectable for tests.
type App struct {
	vault   *vault.Vault
	keyring keyringx.API
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger

	// persistent flag targets, resolved in init()
	configPath string
	vaultDir   string
}

func NewApp(in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		keyring: keyringx.OS{},
		reader:  bufio.NewReader(in),
		out:     out,
		log:     log,
	}
}

// init resolves configuration and constructs the vault. Called from the root
// command's PersistentPreRunE, after flags are parsed.
func (a *App) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.vaultDir != "" {
		cfg.VaultDir = a.vaultDir
	}
	a.vault = vault.New(cfg.VaultDir, a.log)
	return nil
}

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

func (a *App) success(format string, args ...any) {
	successColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) warn(format string, args ...any) {
	warnColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) print(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// promptCredentials collects all seven credential fields in order.
func (a *App) promptCredentials() (*models.Credentials, error) {
	creds := &models.Credentials{}
	for _, f := range creds.Fields() {
		val, err := GetSimpleText(a.reader, "Enter "+f.Label, a.out)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Label, err)
		}
		*f.Value = val
	}
	return creds, nil
}

// promptNewPassword asks for the vault password twice, allowing one retry on
// mismatch before giving up.
func (a *App) promptNewPassword() ([]byte, error) {
	for attempt := 0; attempt < 2; attempt++ {
		pw, err := GetPassword("Enter password: ", a.out)
		if err != nil {
			return nil, err
		}
		confirm, err := GetPassword("Confirm password: ", a.out)
		if err != nil {
			common.WipeByteArray(pw)
			return nil, err
		}
		if bytes.Equal(pw, confirm) {
			common.WipeByteArray(confirm)
			return pw, nil
		}
		common.WipeByteArray(pw)
		common.WipeByteArray(confirm)
		a.warn("Passwords do not match. Please try again.")
	}
	return nil, fmt.Errorf("%w: passwords did not match", common.ErrorValidation)
}

// obtainPassword returns the vault password for username: from the OS keyring
// when useKeyring is set and an entry exists, otherwise by prompting.
func (a *App) obtainPassword(username string, useKeyring bool) ([]byte, error) {
	if useKeyring {
		val, err := a.keyring.Get(username)
		if err == nil {
			return []byte(val), nil
		}
		if !errors.Is(err, keyringx.ErrNotFound) {
			a.warn("Keyring lookup failed: %v", err)
		}
	}
	return GetPassword("Enter password: ", a.out)
}
