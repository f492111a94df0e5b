package cli

import (
	"fmt"
	"text/tabwriter"

	"docvault/internal/session"

	"github.com/spf13/cobra"
)

func newStatusCmd(sh *shell) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session state and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)

			fmt.Fprintf(w, "session:\t%s\n", sh.app.Session.State())
			fmt.Fprintf(w, "api:\t%s\n", sh.app.Cfg.API.BaseURL)
			fmt.Fprintf(w, "session file:\t%s\n", sh.app.Cfg.Session.Path)

			if err := w.Flush(); err != nil {
				return err
			}

			if sh.app.Session.State() == session.StateAuthenticated {
				sh.printf("\navailable: upload, search, tags, download, logout\n")
			} else {
				sh.printf("\navailable: login\n")
			}

			return nil
		},
	}
}
