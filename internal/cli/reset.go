package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/xpost/internal/common"
	"github.com/dmitrijs2005/xpost/internal/keyringx"
)

// NewResetCommand creates the reset command. `reset <username>` deletes one
// user's vault file; `reset --all` wipes the whole vault directory. Both are
// irreversible and sit behind a confirmation prompt unless --yes is given.
func NewResetCommand(a *App) *cobra.Command {
	var (
		all bool
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "reset [username]",
		Short: "Delete stored credentials",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case all && len(args) > 0:
				return fmt.Errorf("%w: --all cannot be combined with a username", common.ErrorValidation)
			case all:
				return a.resetAll(cmd, yes)
			case len(args) == 1:
				return a.resetUser(cmd, args[0], yes)
			default:
				return fmt.Errorf("%w: specify a username or --all", common.ErrorValidation)
			}
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "delete every user's credentials and the vault directory itself")
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation prompts")

	return cmd
}

func (a *App) resetUser(cmd *cobra.Command, username string, yes bool) error {
	if !yes {
		ok, err := Confirm(a.reader, fmt.Sprintf("Delete stored credentials for %q? [y/N]", username), a.out)
		if err != nil {
			return err
		}
		if !ok {
			a.print("Operation cancelled.")
			return nil
		}
	}

	err := a.vault.Reset(cmd.Context(), username)
	if errors.Is(err, common.ErrorNotFound) {
		a.warn("No stored credentials for %q. Nothing to delete.", username)
		return nil
	}
	if err != nil {
		return err
	}

	if kerr := a.keyring.Delete(username); kerr != nil && !errors.Is(kerr, keyringx.ErrNotFound) {
		a.warn("Could not remove the keyring entry: %v", kerr)
	}

	a.success("Credentials for %q successfully reset.", username)
	return nil
}

func (a *App) resetAll(cmd *cobra.Command, yes bool) error {
	if !yes {
		ok, err := Confirm(a.reader, "You want to delete all the data [y/N]", a.out)
		if err != nil {
			return err
		}
		if ok {
			ok, err = Confirm(a.reader,
				"Are you absolutely sure? This cannot be undone and will delete every user's API keys. Type 'y' to confirm", a.out)
			if err != nil {
				return err
			}
		}
		if !ok {
			a.print("Operation cancelled. Find your files at %s", a.vault.Dir())
			return nil
		}
	}

	err := a.vault.ResetAll(cmd.Context())
	if errors.Is(err, common.ErrorNotFound) {
		a.warn("No vault directory found. Nothing to delete.")
		return nil
	}
	if err != nil {
		return err
	}

	a.success("All stored credentials successfully deleted.")
	return nil
}
