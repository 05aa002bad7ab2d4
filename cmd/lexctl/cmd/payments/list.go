package payments

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

var listCase string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments",
	RunE: screen.Guarded(guard.ScreenPayments, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		payments, err := api.ListPayments(cmd.Context(), listCase)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CASE\tAMOUNT\tSTATUS\tPAID\tGUID")
		for _, p := range payments {
			paid := "-"
			if !p.PaidAt.IsZero() {
				paid = p.PaidAt.Format(time.DateOnly)
			}
			amount := fmt.Sprintf("%.2f %s", float64(p.AmountCents)/100, p.Currency)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.CaseGUID, amount, p.Status, paid, p.GUID)
		}
		w.Flush()
		return nil
	}),
}

func init() {
	listCmd.Flags().StringVar(&listCase, "case", "", "Filter payments to one case GUID")
}
