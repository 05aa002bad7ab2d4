package tasks

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/matter"
	"github.com/annthusiaast/lexctl/cmd/lexctl/internal/screen"
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/spf13/cobra"
)

var (
	listCase string
	listAll  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: screen.Guarded(guard.ScreenTasks, access, func(cmd *cobra.Command, args []string, api *sdk.Client) error {
		caseGUID := listCase
		if caseGUID == "" && !listAll {
			// Scope to the directory's case when one is bound.
			dirCtx, err := matter.Read()
			if err != nil {
				return err
			}
			if dirCtx != nil {
				caseGUID = dirCtx.CaseGUID
			}
		}

		tasks, err := api.ListTasks(cmd.Context(), caseGUID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DONE\tTITLE\tDUE\tGUID")
		for _, t := range tasks {
			done := " "
			if t.Done {
				done = "x"
			}
			due := "-"
			if !t.DueAt.IsZero() {
				due = t.DueAt.Format(time.DateOnly)
			}
			fmt.Fprintf(w, "[%s]\t%s\t%s\t%s\n", done, t.Title, due, t.GUID)
		}
		w.Flush()
		return nil
	}),
}

func init() {
	listCmd.Flags().StringVar(&listCase, "case", "", "Filter tasks to one case GUID")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Ignore the directory's case context")
}
