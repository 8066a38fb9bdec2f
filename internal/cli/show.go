package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/xpost/internal/common"
)

// NewShowCommand creates the show command: decrypt a user's vault file and
// print the credential fields. Values are masked unless --reveal is given.
func NewShowCommand(a *App) *cobra.Command {
	var (
		useKeyring bool
		reveal     bool
	)

	cmd := &cobra.Command{
		Use:   "show <username>",
		Short: "Decrypt and display stored credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			password, err := a.obtainPassword(username, useKeyring)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			creds, err := a.vault.Load(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			for _, f := range creds.Fields() {
				val := *f.Value
				if !reveal {
					val = maskValue(val)
				}
				a.print("%s=%s", f.Label, val)
			}
			if !reveal {
				a.print("(values masked; pass --reveal to print them in full)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useKeyring, "keyring", false, "take the password from the OS keyring when present")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print secret values in full")

	return cmd
}

// maskValue hides all but the last four characters of a secret. Short values
// are masked entirely so their length leaks nothing.
func maskValue(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 4) + s[len(s)-4:]
}
