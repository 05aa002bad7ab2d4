package payments

import (
	"github.com/annthusiaast/lexctl/pkg/guard"
	"github.com/spf13/cobra"
)

// Billing is admin-only.
var access = guard.Requirements{
	AllowedRoles: []guard.Role{guard.RoleAdmin},
}

// PaymentsCmd is the parent command for billing records.
var PaymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Review billing records",
}

func init() {
	PaymentsCmd.AddCommand(listCmd)
}
