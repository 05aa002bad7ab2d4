package clients

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: screen.Guarded(guard.ScreenClients, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		contacts, err := api.ListContacts(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tEMAIL\tPHONE\tGUID")
		for _, c := range contacts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Email, c.Phone, c.GUID)
		}
		w.Flush()
		return nil
	}),
}
