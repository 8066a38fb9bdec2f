package cli

import "github.com/spf13/cobra"

// NewVersionCommand creates the version command.
func NewVersionCommand(a *App, version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// overrides the root's PersistentPreRunE so no config or vault is resolved
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			a.print("xpost %s (commit %s, built %s)", version, commit, date)
			return nil
		},
	}
}
