package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/xpost/internal/common"
)

// NewStoreCommand creates the store command: collect the seven credential
// fields interactively, encrypt them under the user's password and write the
// vault file.
func NewStoreCommand(a *App) *cobra.Command {
	var useKeyring bool

	cmd := &cobra.Command{
		Use:     "store <username>",
		Aliases: []string{"add-user"},
		Short:   "Encrypt and store API credentials for a user",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			password, err := a.promptNewPassword()
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			creds, err := a.promptCredentials()
			if err != nil {
				return err
			}

			if err := a.vault.Save(cmd.Context(), username, password, creds); err != nil {
				return err
			}

			if useKeyring {
				if err := a.keyring.Set(username, string(password)); err != nil {
					a.warn("Could not store the password in the OS keyring: %v", err)
				} else {
					a.print("Password remembered in the OS keyring.")
				}
			}

			a.success("Credentials encrypted and stored successfully.")
			a.print("Vault file: %s", a.vault.FilePath(username))
			return nil
		},
	}

	cmd.Flags().BoolVar(&useKeyring, "keyring", false, "also remember the password in the OS keyring")

	return cmd
}
