package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the xpost command tree. Version information is
// injected by main from build-time variables.
func NewRootCommand(a *App, version, commit, date string) *cobra.Command {
	root := &cobra.Command{
		Use:           "xpost",
		Short:         "Encrypted local vault for API credentials",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file path (JSON)")
	root.PersistentFlags().StringVar(&a.vaultDir, "vault-dir", "", "vault directory (default: ~/.xpost)")

	root.AddCommand(NewStoreCommand(a))
	root.AddCommand(NewShowCommand(a))
	root.AddCommand(NewResetCommand(a))
	root.AddCommand(NewVersionCommand(a, version, commit, date))

	return root
}
