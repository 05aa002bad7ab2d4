package auth

import (
	"fmt"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/config"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [code]",
	Short: "Complete sign-in with a one-time passcode",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		sess, err := cfg.Provider.Session()
		if err != nil {
			return err
		}
		if err := sess.Bootstrap(cmd.Context()); err != nil {
			return err
		}

		var code string
		if len(args) == 1 {
			code = args[0]
		} else {
			if cfg.NonInteractive {
				return fmt.Errorf("passcode argument is required in non-interactive mode")
			}
			code, err = pterm.DefaultInteractiveTextInput.Show("Passcode")
			if err != nil {
				return err
			}
		}

		if err := sess.VerifyPasscode(cmd.Context(), code); err != nil {
			switch sdk.KindOf(err) {
			case sdk.KindNoPendingSession:
				return fmt.Errorf("no sign-in to verify; run `lexctl auth login` first")
			case sdk.KindVerificationFailed:
				return fmt.Errorf("verification rejected (you can retry or run `lexctl auth resend`): %w", err)
			}
			return err
		}

		user := sess.User()
		pterm.Success.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
		return nil
	},
}
