package auth

import (
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Long: `Signs out locally and, best-effort, invalidates the server-side session.
Logout always succeeds locally, even without connectivity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		sess, err := cfg.Provider.Session()
		if err != nil {
			return err
		}
		if err := sess.Bootstrap(cmd.Context()); err != nil {
			return err
		}

		if err := sess.Logout(cmd.Context()); err != nil {
			return err
		}

		pterm.Success.Println("Signed out")
		return nil
	},
}
