package cases

import (
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	createTitle  string
	createClient string
)

// Only lawyers and admins open new matters.
var createAccess = guard.Requirements{
	AllowedRoles: []guard.Role{guard.RoleAdmin, guard.RoleLawyer},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new case",
	RunE: screen.Guarded(guard.ScreenCases, createAccess, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		c, err := api.CreateCase(cmd.Context(), sdk.CreateCaseInput{
			Title:    createTitle,
			ClientID: createClient,
		})
		if err != nil {
			return err
		}

		pterm.Success.Printf("Created case %s (%s)\n", c.Number, c.GUID)
		return nil
	}),
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "Case title (required)")
	createCmd.Flags().StringVar(&createClient, "client", "", "Client GUID")
	_ = createCmd.MarkFlagRequired("title")
}
