package cases

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cases",
	RunE: screen.Guarded(guard.ScreenCases, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		cases, err := api.ListCases(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NUMBER\tTITLE\tSTATUS\tFILED\tGUID")
		for _, c := range cases {
			filed := "-"
			if !c.FiledAt.IsZero() {
				filed = c.FiledAt.Format(time.DateOnly)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Number, c.Title, c.Status, filed, c.GUID)
		}
		w.Flush()
		return nil
	}),
}
