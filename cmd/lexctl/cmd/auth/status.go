package auth

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/config"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/session"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		sess, err := cfg.Provider.Session()
		if err != nil {
			return err
		}
		if err := sess.Bootstrap(cmd.Context()); err != nil {
			return err
		}

		pterm.DefaultSection.Println("Session Status")

		switch sess.Status() {
		case session.StatusAnonymous:
			pterm.Info.Println("Not signed in. Run `lexctl auth login`.")
			return nil
		case session.StatusPendingVerification:
			pterm.Warning.Printf("Sign-in pending passcode verification for %s.\n", sess.PendingEmail())
			pterm.Info.Println("Run `lexctl auth verify <code>` or `lexctl auth resend`.")
			return nil
		}

		user := sess.User()
		pterm.Info.Printf("Signed in as: %s (%s)\n", user.Name, user.Email)
		pterm.Info.Printf("Role: %s\n", user.Role)

		role, ok := guard.ParseRole(user.Role)
		if !ok {
			pterm.Warning.Printf("Role %q is not recognized; access falls back to the default screen group.\n", user.Role)
		}

		table := guard.DefaultTable()
		group := table.Group(role)
		screens := make([]string, 0, len(group.Screens))
		for _, s := range group.Screens {
			screens = append(screens, s.String())
		}

		pterm.DefaultSection.Println("Access")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LANDING\tSCREENS")
		fmt.Fprintf(w, "%s\t%s\n", table.Path(role, group.Landing), strings.Join(screens, ", "))
		w.Flush()

		return nil
	},
}
