package tasks

import (
	"fmt"
	"time"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/matter"
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	addCase string
	addDue  string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: screen.Guarded(guard.ScreenTasks, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		caseGUID := addCase
		if caseGUID == "" {
			dirCtx, err := matter.Read()
			if err != nil {
				return err
			}
			if dirCtx != nil {
				caseGUID = dirCtx.CaseGUID
			}
		}

		input := sdk.CreateTaskInput{
			Title:    args[0],
			CaseGUID: caseGUID,
		}
		if addDue != "" {
			due, err := time.Parse(time.DateOnly, addDue)
			if err != nil {
				return fmt.Errorf("invalid --due date %q (expected YYYY-MM-DD): %w", addDue, err)
			}
			input.DueAt = due
		}

		t, err := api.CreateTask(cmd.Context(), input)
		if err != nil {
			return err
		}

		pterm.Success.Printf("Added task %s (%s)\n", t.Title, t.GUID)
		return nil
	}),
}

func init() {
	addCmd.Flags().StringVar(&addCase, "case", "", "Attach the task to a case GUID")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
}
