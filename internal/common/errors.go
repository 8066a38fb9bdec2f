// Package common defines shared sentinel errors used across the vault and
// CLI layers of xpost. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrorMalformedVault = errors.New("malformed vault file")

	// ErrorInvalidPassword is returned when decryption fails its integrity
	// check. A wrong password and a tampered file are indistinguishable here,
	// intentionally.
	ErrorInvalidPassword = errors.New("invalid password")

	// Validation errors.
	ErrorValidation = errors.New("validation error")
)
