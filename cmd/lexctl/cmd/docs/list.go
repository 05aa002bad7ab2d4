package docs

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/matter"
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/spf13/cobra"
)

var listCase string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE: screen.Guarded(guard.ScreenDocuments, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		caseGUID := listCase
		if caseGUID == "" {
			dirCtx, err := matter.Read()
			if err != nil {
				return err
			}
			if dirCtx != nil {
				caseGUID = dirCtx.CaseGUID
			}
		}

		documents, err := api.ListDocuments(cmd.Context(), caseGUID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tSIZE\tGUID")
		for _, d := range documents {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", d.Name, d.MimeType, d.SizeBytes, d.GUID)
		}
		w.Flush()
		return nil
	}),
}

func init() {
	listCmd.Flags().StringVar(&listCase, "case", "", "Filter documents to one case GUID")
}
