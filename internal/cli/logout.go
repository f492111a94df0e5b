package cli

import (
	"docvault/internal/session"

	"github.com/spf13/cobra"
)

func newLogoutCmd(sh *shell) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sh.app.Session.State() != session.StateAuthenticated {
				sh.printf("not signed in\n")
				return nil
			}

			if err := sh.app.Session.SignOut(cmd.Context()); err != nil {
				return err
			}

			sh.printf("signed out\n")

			return nil
		},
	}
}
