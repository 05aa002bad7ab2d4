package auth

import (
	"fmt"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/config"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	Long: `Submits credentials to the backend. A successful submission does not
complete authentication: the backend sends a one-time passcode to the
account's contact address, and the session stays pending until
'lexctl auth verify' succeeds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		email := loginEmail
		if email == "" {
			if cfg.NonInteractive {
				return fmt.Errorf("--email is required in non-interactive mode")
			}
			var err error
			email, err = pterm.DefaultInteractiveTextInput.Show("Email")
			if err != nil {
				return err
			}
		}

		password := loginPassword
		if password == "" {
			if cfg.NonInteractive {
				return fmt.Errorf("--password is required in non-interactive mode")
			}
			var err error
			password, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
			if err != nil {
				return err
			}
		}

		sess, err := cfg.Provider.Session()
		if err != nil {
			return err
		}
		if err := sess.Login(cmd.Context(), email, password); err != nil {
			if sdk.KindOf(err) == sdk.KindInvalidCredentials {
				return fmt.Errorf("login rejected: %w", err)
			}
			return err
		}

		pterm.Success.Printf("Credentials accepted for %s\n", email)
		pterm.Info.Println("A one-time passcode has been sent. Complete sign-in with `lexctl auth verify <code>`.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted; prefer the prompt)")
}
