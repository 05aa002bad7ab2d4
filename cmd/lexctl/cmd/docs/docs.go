package docs

import (
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/spf13/cobra"
)

var access = guard.Requirements{
	AllowedRoles: []guard.Role{guard.RoleAdmin, guard.RoleLawyer, guard.RoleParalegal},
}

// DocsCmd is the parent command for document operations.
var DocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Browse case documents",
}

func init() {
	DocsCmd.AddCommand(listCmd)
	DocsCmd.AddCommand(getCmd)
}
