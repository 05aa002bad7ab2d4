package cases

import (
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/matter"
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusCase string

var statusCmd = &cobra.Command{
	Use:   "status <new-status>",
	Short: "Move a case to a new workflow status",
	Args:  cobra.ExactArgs(1),
	RunE: screen.Guarded(guard.ScreenCases, createAccess, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		dirCtx, err := matter.Read()
		if err != nil {
			return err
		}
		guid, err := matter.ResolveCase(statusCase, dirCtx)
		if err != nil {
			return err
		}

		c, err := api.UpdateCaseStatus(cmd.Context(), guid, args[0])
		if err != nil {
			return err
		}

		pterm.Success.Printf("Case %s is now %s\n", c.Number, c.Status)
		return nil
	}),
}

func init() {
	statusCmd.Flags().StringVar(&statusCase, "case", "", "Case GUID (defaults to the directory's .lexmatter context)")
}
