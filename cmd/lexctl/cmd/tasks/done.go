package tasks

import (
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-guid>",
	Short: "Mark a task complete",
	Args:  cobra.ExactArgs(1),
	RunE: screen.Guarded(guard.ScreenTasks, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		t, err := api.CompleteTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		pterm.Success.Printf("Completed %s\n", t.Title)
		return nil
	}),
}
