package auth

import (
	"fmt"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/config"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var resendCmd = &cobra.Command{
	Use:   "resend",
	Short: "Request a fresh one-time passcode",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		sess, err := cfg.Provider.Session()
		if err != nil {
			return err
		}
		if err := sess.Bootstrap(cmd.Context()); err != nil {
			return err
		}

		if err := sess.ResendPasscode(cmd.Context()); err != nil {
			if sdk.KindOf(err) == sdk.KindNoPendingSession {
				return fmt.Errorf("no sign-in in progress; run `lexctl auth login` first")
			}
			return err
		}

		pterm.Success.Println("A new passcode has been sent.")
		return nil
	},
}
