package clients

import (
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <client-guid>",
	Short: "Show one client",
	Args:  cobra.ExactArgs(1),
	RunE: screen.Guarded(guard.ScreenClients, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		c, err := api.GetContact(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println(c.Name)
		pterm.Info.Printf("Email: %s\n", c.Email)
		pterm.Info.Printf("Phone: %s\n", c.Phone)
		if c.Company != "" {
			pterm.Info.Printf("Company: %s\n", c.Company)
		}
		return nil
	}),
}
