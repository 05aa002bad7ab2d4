package clients

import (
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	addEmail string
	addPhone string
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a client",
	Args:  cobra.ExactArgs(1),
	RunE: screen.Guarded(guard.ScreenClients, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		c, err := api.CreateContact(cmd.Context(), sdk.CreateContactInput{
			Name:  args[0],
			Email: addEmail,
			Phone: addPhone,
		})
		if err != nil {
			return err
		}

		pterm.Success.Printf("Added client %s (%s)\n", c.Name, c.GUID)
		return nil
	}),
}

func init() {
	addCmd.Flags().StringVar(&addEmail, "email", "", "Client email")
	addCmd.Flags().StringVar(&addPhone, "phone", "", "Client phone")
}
