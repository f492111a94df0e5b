// Package cli holds the command shell: one file per screen, all of them
// thin layers over the app's session manager and API clients.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"docvault/internal/app"
	"docvault/internal/models"
	"docvault/internal/session"

	"github.com/spf13/cobra"
)

const pkg = "cli/"

// shell carries what every screen needs: the wired app, the stream output
// goes to and the stream prompts read from.
type shell struct {
	app *app.App
	out io.Writer
	in  *bufio.Reader
}

// Execute runs the CLI over the wired app and returns the command error,
// if any. Cobra has already printed it.
func Execute(a *app.App) error {
	return run(a, os.Stdout, os.Stdin, os.Args[1:])
}

func run(a *app.App, out io.Writer, in io.Reader, args []string) error {
	sh := &shell{
		app: a,
		out: out,
		in:  bufio.NewReader(in),
	}

	cmd := newRootCmd(sh)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)

	return cmd.Execute()
}

func newRootCmd(sh *shell) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docvault",
		Short: "Client for the document-management service",
		Long: `Docvault is a command-line client for the document-management service.

Sign in with a one-time code sent to your mobile number, then upload
documents with metadata, browse known tags, search the archive and
download stored files.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			op := pkg + "Restore"

			log := sh.app.Log.With(slog.String("op", op))

			sh.app.Session.OnChange(func(state session.State) {
				log.Debug("session state changed", slog.String("state", state.String()))
			})

			sh.app.Session.Restore(cmd.Context())
		},
	}

	cmd.AddCommand(
		newLoginCmd(sh),
		newLogoutCmd(sh),
		newStatusCmd(sh),
		newUploadCmd(sh),
		newTagsCmd(sh),
		newSearchCmd(sh),
		newDownloadCmd(sh),
	)

	return cmd
}

// requireSession gates screens that need a signed-in user.
func (sh *shell) requireSession() error {
	if sh.app.Session.State() != session.StateAuthenticated {
		return fmt.Errorf("%w: run \"docvault login\" first", models.ErrSessionMissing)
	}

	return nil
}

// prompt prints the label and reads one trimmed line from the shell input.
func (sh *shell) prompt(label string) (string, error) {
	fmt.Fprintf(sh.out, "%s: ", label)

	line, err := sh.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func (sh *shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}
