// Package guard gates access to protected screens. It reads session state
// and a screen's declared access requirements and decides whether to
// render, wait, or redirect. Each redirect is issued exactly once per
// violation so quick successive state updates cannot oscillate navigation.
package guard

import (
	"strings"
	"sync"

	"github.com/annthusiaast/lexctl/pkg/session"
)

// State is the slice of session state the guard reads. The guard never
// mutates the session.
type State struct {
	Loading bool
	Status  session.Status
	Role    Role
}

// StateOf snapshots a session manager into guard input.
func StateOf(m *session.Manager) State {
	role, _ := ParseRole(m.RoleLabel())
	return State{
		Loading: !m.Ready(),
		Status:  m.Status(),
		Role:    role,
	}
}

// Requirements are a protected screen's declared access constraints. A nil
// list means no constraint of that kind.
type Requirements struct {
	AllowedRoles   []Role
	AllowedScreens []Screen
}

// Decision is the outcome of one guard evaluation.
type Decision int

const (
	// DecisionWait means the session is still bootstrapping; render a
	// neutral waiting state and do not evaluate constraints yet.
	DecisionWait Decision = iota
	// DecisionRender means all constraints pass.
	DecisionRender
	// DecisionRedirect means navigate to Target.
	DecisionRedirect
	// DecisionHeld means a redirect for this same violation is already in
	// flight; do not issue another.
	DecisionHeld
)

func (d Decision) String() string {
	switch d {
	case DecisionRender:
		return "render"
	case DecisionRedirect:
		return "redirect"
	case DecisionHeld:
		return "held"
	default:
		return "wait"
	}
}

// Result is a decision plus the redirect target when there is one.
type Result struct {
	Decision Decision
	Target   Screen
}

// Guard wraps one protected screen. Construct one per screen; the
// requirements are fixed at construction the way a view declares them.
type Guard struct {
	table Table
	req   Requirements

	mu         sync.Mutex
	latched    bool
	lastState  State
	lastScreen Screen
	lastTarget Screen
}

// New creates a guard for a screen with the given requirements, resolving
// redirect targets against the role table.
func New(table Table, req Requirements) *Guard {
	return &Guard{table: table, req: req}
}

// Evaluate runs the redirect algorithm for the current session state and
// screen. It is called whenever either changes. Once a redirect has been
// issued, repeat evaluations with identical inputs return DecisionHeld
// until the inputs change or all constraints pass, which rearms the latch.
func (g *Guard) Evaluate(st State, current Screen) Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	if st.Loading {
		return Result{Decision: DecisionWait}
	}

	if g.latched && st == g.lastState && current == g.lastScreen {
		return Result{Decision: DecisionHeld, Target: g.lastTarget}
	}

	result := g.decide(st, current)
	if result.Decision == DecisionRedirect {
		g.latched = true
		g.lastState = st
		g.lastScreen = current
		g.lastTarget = result.Target
	} else {
		g.latched = false
	}
	return result
}

func (g *Guard) decide(st State, current Screen) Result {
	// A pending session is never allowed into any protected screen,
	// whatever the declared constraints.
	if st.Status == session.StatusPendingVerification {
		return Result{Decision: DecisionRedirect, Target: ScreenVerify}
	}
	if st.Status != session.StatusAuthenticated {
		return Result{Decision: DecisionRedirect, Target: ScreenLogin}
	}

	if len(g.req.AllowedRoles) > 0 && !roleAllowed(st.Role, g.req.AllowedRoles) {
		landing := g.table.Group(g.req.AllowedRoles[0]).Landing
		return Result{Decision: DecisionRedirect, Target: landing}
	}

	if len(g.req.AllowedScreens) > 0 && !screenAllowed(current, g.req.AllowedScreens) {
		return Result{Decision: DecisionRedirect, Target: g.req.AllowedScreens[0]}
	}

	return Result{Decision: DecisionRender}
}

func roleAllowed(r Role, allowed []Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}

func screenAllowed(s Screen, allowed []Screen) bool {
	for _, a := range allowed {
		if a == s {
			return true
		}
	}
	return false
}

// Path renders the navigation path for a screen within a role's group,
// e.g. "/lawyer/cases". Auth screens are role-independent.
func (t Table) Path(r Role, s Screen) string {
	switch s {
	case ScreenLogin, ScreenVerify:
		return "/" + s.String()
	}
	group := t.Group(r)
	prefix := strings.ToLower(r.String())
	if r == RoleUnknown || !group.Allows(s) {
		// Fall back to the role group's landing when the screen is not
		// reachable for this role.
		s = group.Landing
	}
	if r == RoleUnknown {
		return "/" + s.String()
	}
	return "/" + prefix + "/" + s.String()
}
