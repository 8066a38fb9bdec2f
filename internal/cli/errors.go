package cli

import (
	"errors"

	"github.com/dmitrijs2005/xpost/internal/common"
)

// UserMessage converts a vault failure into the message shown to the user.
// The wrong-password and tampered-file cases share one message: the cipher
// cannot tell them apart and neither should the output.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrorInvalidPassword):
		return "Invalid password provided. Unable to decrypt credentials."
	case errors.Is(err, common.ErrorNotFound):
		return "Credentials file not found. Check the username, or store credentials first with 'xpost store'."
	case errors.Is(err, common.ErrorMalformedVault):
		return "The vault file is malformed or was written by an incompatible version."
	default:
		return err.Error()
	}
}
