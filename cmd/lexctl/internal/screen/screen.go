// Package screen binds the route guard to cobra commands. Each screen
// command declares its access requirements; the shared wrapper bootstraps
// the session, evaluates the guard, and turns redirect decisions into
// actionable CLI guidance.
package screen

import (
	"fmt"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/config"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/annthusiaast/lexctl/pkg/session"
	"github.com/spf13/cobra"
)

// RunFunc is a screen command body, invoked only when the guard renders.
type RunFunc func(cmd *cobra.Command, args []string, api *sdk.Client) error

// Guarded wraps a command body with session bootstrap and guard
// evaluation for the given screen.
func Guarded(current guard.Screen, req guard.Requirements, run RunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		sess, err := cfg.Provider.Session()
		if err != nil {
			return err
		}
		if err := sess.Bootstrap(cmd.Context()); err != nil {
			return err
		}

		g := guard.New(guard.DefaultTable(), req)
		result := g.Evaluate(guard.StateOf(sess), current)
		switch result.Decision {
		case guard.DecisionRender:
			// fall through to the screen body
		case guard.DecisionWait:
			return fmt.Errorf("session is still loading; try again")
		default:
			return redirectError(result.Target, sess)
		}

		api, err := cfg.Provider.SDKClient()
		if err != nil {
			return err
		}
		return run(cmd, args, api)
	}
}

func redirectError(target guard.Screen, sess *session.Manager) error {
	switch target {
	case guard.ScreenLogin:
		return fmt.Errorf("not logged in; run `lexctl auth login`")
	case guard.ScreenVerify:
		email := sess.PendingEmail()
		if email != "" {
			return fmt.Errorf("passcode verification pending for %s; run `lexctl auth verify <code>`", email)
		}
		return fmt.Errorf("passcode verification pending; run `lexctl auth verify <code>`")
	default:
		role, _ := guard.ParseRole(sess.RoleLabel())
		path := guard.DefaultTable().Path(role, target)
		return fmt.Errorf("your role (%s) does not have access to this screen; try %s", sess.RoleLabel(), path)
	}
}
