package docs

import (
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <document-guid>",
	Short: "Show document details",
	Args:  cobra.ExactArgs(1),
	RunE: screen.Guarded(guard.ScreenDocuments, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		d, err := api.GetDocument(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println(d.Name)
		pterm.Info.Printf("Case: %s\n", d.CaseGUID)
		pterm.Info.Printf("Type: %s\n", d.MimeType)
		pterm.Info.Printf("Size: %d bytes\n", d.SizeBytes)
		if d.URL != "" {
			pterm.Info.Printf("Download: %s\n", d.URL)
		}
		return nil
	}),
}
