package clients

import (
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/spf13/cobra"
)

// The client registry holds contact details; paralegals and staff do not
// see it.
var access = guard.Requirements{
	AllowedRoles: []guard.Role{guard.RoleAdmin, guard.RoleLawyer},
}

// ClientsCmd is the parent command for the client registry.
var ClientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage the client registry",
}

func init() {
	ClientsCmd.AddCommand(listCmd)
	ClientsCmd.AddCommand(getCmd)
	ClientsCmd.AddCommand(addCmd)
}
