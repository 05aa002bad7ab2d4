package cases

import (
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/spf13/cobra"
)

// access declares who may enter the cases screen. Staff work from the task
// tracker only.
var access = guard.Requirements{
	AllowedRoles: []guard.Role{guard.RoleAdmin, guard.RoleLawyer, guard.RoleParalegal},
}

// CasesCmd is the parent command for case operations.
var CasesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Browse and manage cases",
}

func init() {
	CasesCmd.AddCommand(listCmd)
	CasesCmd.AddCommand(getCmd)
	CasesCmd.AddCommand(createCmd)
	CasesCmd.AddCommand(statusCmd)
	CasesCmd.AddCommand(initCmd)
}
