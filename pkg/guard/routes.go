package guard

// Role is the closed set of user roles the backend issues. Keeping it an
// enumeration (rather than comparing free-form strings everywhere) makes
// the access tables exhaustively checkable.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleLawyer
	RoleParalegal
	RoleStaff
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleLawyer:
		return "Lawyer"
	case RoleParalegal:
		return "Paralegal"
	case RoleStaff:
		return "Staff"
	default:
		return "unknown"
	}
}

// ParseRole maps a backend role label to a Role.
func ParseRole(label string) (Role, bool) {
	switch label {
	case "Admin":
		return RoleAdmin, true
	case "Lawyer":
		return RoleLawyer, true
	case "Paralegal":
		return RoleParalegal, true
	case "Staff":
		return RoleStaff, true
	default:
		return RoleUnknown, false
	}
}

// Screen is the closed set of views the client can show.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenLogin
	ScreenVerify
	ScreenHome
	ScreenCases
	ScreenTasks
	ScreenDocuments
	ScreenClients
	ScreenPayments
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenVerify:
		return "verify"
	case ScreenHome:
		return "home"
	case ScreenCases:
		return "cases"
	case ScreenTasks:
		return "tasks"
	case ScreenDocuments:
		return "documents"
	case ScreenClients:
		return "clients"
	case ScreenPayments:
		return "payments"
	default:
		return "none"
	}
}

// RoleGroup is one role's partition of the app: its landing screen and the
// screens it may visit. The guard consumes these tables; it never computes
// them.
type RoleGroup struct {
	Landing Screen
	Screens []Screen
}

// Allows reports whether the group includes the screen.
func (g RoleGroup) Allows(s Screen) bool {
	for _, allowed := range g.Screens {
		if allowed == s {
			return true
		}
	}
	return false
}

// Table maps roles to their groups, with a fallback group for roles that
// have no entry.
type Table struct {
	Groups  map[Role]RoleGroup
	Default RoleGroup
}

// Group returns the role's group, falling back to the default group.
func (t Table) Group(r Role) RoleGroup {
	if g, ok := t.Groups[r]; ok {
		return g
	}
	return t.Default
}

// DefaultTable is the static role-to-screen configuration shipped with the
// client.
func DefaultTable() Table {
	return Table{
		Groups: map[Role]RoleGroup{
			RoleAdmin: {
				Landing: ScreenHome,
				Screens: []Screen{ScreenHome, ScreenCases, ScreenTasks, ScreenDocuments, ScreenClients, ScreenPayments},
			},
			RoleLawyer: {
				Landing: ScreenHome,
				Screens: []Screen{ScreenHome, ScreenCases, ScreenTasks, ScreenDocuments, ScreenClients},
			},
			RoleParalegal: {
				Landing: ScreenHome,
				Screens: []Screen{ScreenHome, ScreenCases, ScreenTasks, ScreenDocuments},
			},
			RoleStaff: {
				Landing: ScreenHome,
				Screens: []Screen{ScreenHome, ScreenTasks},
			},
		},
		Default: RoleGroup{
			Landing: ScreenHome,
			Screens: []Screen{ScreenHome},
		},
	}
}
