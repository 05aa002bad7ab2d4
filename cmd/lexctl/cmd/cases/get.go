package cases

import (
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/matter"
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var getCase string

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show one case",
	RunE: screen.Guarded(guard.ScreenCases, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		dirCtx, err := matter.Read()
		if err != nil {
			return err
		}
		guid, err := matter.ResolveCase(getCase, dirCtx)
		if err != nil {
			return err
		}

		c, err := api.GetCase(cmd.Context(), guid)
		if err != nil {
			return err
		}

		pterm.DefaultSection.Printf("Case %s\n", c.Number)
		pterm.Info.Printf("Title: %s\n", c.Title)
		pterm.Info.Printf("Status: %s\n", c.Status)
		pterm.Info.Printf("Client: %s\n", c.ClientID)
		pterm.Info.Printf("Assignee: %s\n", c.AssigneeID)
		return nil
	}),
}

func init() {
	getCmd.Flags().StringVar(&getCase, "case", "", "Case GUID (defaults to the directory's .lexmatter context)")
}
