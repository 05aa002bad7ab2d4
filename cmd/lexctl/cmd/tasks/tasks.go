package tasks

import (
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/spf13/cobra"
)

// Every role sees the task tracker.
var access = guard.Requirements{
	AllowedRoles: []guard.Role{guard.RoleAdmin, guard.RoleLawyer, guard.RoleParalegal, guard.RoleStaff},
}

// TasksCmd is the parent command for task operations.
var TasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Track to-dos",
}

func init() {
	TasksCmd.AddCommand(listCmd)
	TasksCmd.AddCommand(addCmd)
	TasksCmd.AddCommand(doneCmd)
}
