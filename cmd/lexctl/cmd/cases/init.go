package cases

import (
	"time"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/config"
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/matter"
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <case-guid>",
	Short: "Bind this directory to a case",
	Long: `Writes a .lexmatter file in the current directory so case-scoped
commands here default to the given case.`,
	Args: cobra.ExactArgs(1),
	RunE: screen.Guarded(guard.ScreenCases, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		cfg := config.MustFromContext(cmd.Context())

		// Resolve the case first so a typo'd GUID does not get pinned.
		c, err := api.GetCase(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		dirCtx := &matter.Context{
			Version:    matter.FileVersion,
			CaseGUID:   c.GUID,
			CaseNumber: c.Number,
			ServerURL:  cfg.ServerURL,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := matter.Write(dirCtx); err != nil {
			return err
		}

		pterm.Success.Printf("Bound directory to case %s (%s)\n", c.Number, c.GUID)
		return nil
	}),
}
