package cli

import (
	"log/slog"

	"docvault/internal/session"

	"github.com/spf13/cobra"
)

func newLoginCmd(sh *shell) *cobra.Command {
	var (
		phone string
		code  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a one-time code",
		Long: `Login requests a one-time code for your mobile number, then redeems
it for a session token. The token is stored on disk, so the session
survives until you log out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			op := pkg + "Login"

			log := sh.app.Log.With(slog.String("op", op))

			ctx := cmd.Context()

			if sh.app.Session.State() == session.StateAuthenticated {
				sh.printf("already signed in; run \"docvault logout\" to switch accounts\n")
				return nil
			}

			var err error

			if phone == "" {
				phone, err = sh.prompt("mobile number")
				if err != nil {
					return err
				}
			}

			notice, err := sh.app.Auth.GenerateOTP(ctx, phone)
			if err != nil {
				return err
			}

			if notice != "" {
				sh.printf("%s\n", notice)
			}

			if code == "" {
				code, err = sh.prompt("one-time code")
				if err != nil {
					return err
				}
			}

			token, err := sh.app.Auth.ValidateOTP(ctx, phone, code)
			if err != nil {
				return err
			}

			if err := sh.app.Session.SignIn(ctx, token); err != nil {
				return err
			}

			log.Debug("signed in")

			sh.printf("signed in\n")

			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "10-digit mobile number (prompted when omitted)")
	cmd.Flags().StringVar(&code, "code", "", "one-time code (prompted when omitted)")

	return cmd
}
