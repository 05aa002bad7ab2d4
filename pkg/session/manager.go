// Package session holds the client-side authentication state machine.
//
// A Manager is the single source of truth for authentication state in a
// running process. It moves between three statuses:
//
//	Anonymous --Login--> PendingVerification --VerifyPasscode--> Authenticated
//
// and back to Anonymous on Logout or when startup reconciliation finds the
// cached credential invalid. The durable copy on disk is a best-effort
// cache, never authoritative.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/annthusiaast/lexctl/pkg/sdk"
)

// Status is the authentication state of the session.
type Status int

const (
	// StatusAnonymous means no credential submission has been accepted.
	StatusAnonymous Status = iota
	// StatusPendingVerification means the backend accepted the password
	// and a one-time passcode verification is outstanding.
	StatusPendingVerification
	// StatusAuthenticated means the second factor completed and a user
	// record is present.
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusPendingVerification:
		return "pending verification"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Backend is the slice of the SDK client the session manager drives. All
// network calls that change auth state go through it.
type Backend interface {
	Login(ctx context.Context, email, password string) (*sdk.LoginResult, error)
	VerifyPasscode(ctx context.Context, pendingUserID, code string) (*sdk.VerifyResult, error)
	ResendPasscode(ctx context.Context, pendingUserID string) error
	VerifySession(ctx context.Context) (*sdk.User, bool, error)
	Logout(ctx context.Context) error
}

var _ Backend = (*sdk.Client)(nil)

// Manager owns the in-memory session and mirrors it to a Store. One Manager
// exists per running process; it is injected, never a package global.
type Manager struct {
	api   Backend
	store Store
	log   *slog.Logger

	mu            sync.Mutex
	loading       bool
	bootstrapped  bool
	status        Status
	user          *sdk.User
	token         string
	pendingUserID string
	pendingEmail  string
}

// ManagerOption mutates Manager construction.
type ManagerOption func(*Manager)

// WithLogger overrides the manager's logger.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates a Manager over the given backend and durable store.
func NewManager(api Backend, store Store, optFns ...ManagerOption) *Manager {
	m := &Manager{
		api:   api,
		store: store,
		log:   slog.Default(),
	}
	for _, fn := range optFns {
		fn(m)
	}
	return m
}

// Bootstrap hydrates the session from the durable cache, then performs one
// advisory reconciliation call against the backend. Reconciliation is
// best-effort by design: a network failure falls back to the hydrated state
// rather than blocking startup, because every subsequent protected request
// still requires a valid server-side session to succeed.
//
// A definitive "unauthenticated" from the backend clears the cached user.
// An outstanding passcode verification survives reconciliation: the backend
// reports 401 for a half-completed login, and wiping the pending marker
// would strand the user mid-flow.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	snap, err := m.store.Load()
	if err != nil {
		m.log.Warn("session cache unreadable, starting anonymous", "error", err)
	} else if snap != nil {
		m.applySnapshotLocked(snap)
	}
	hasCredential := m.token != "" || m.user != nil
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.bootstrapped = true
		m.mu.Unlock()
	}()

	if !hasCredential {
		// Nothing durable to reconcile; the advisory call could only
		// confirm what we already know.
		return nil
	}

	user, ok, err := m.api.VerifySession(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.log.Debug("session reconciliation skipped", "error", err)
		return nil
	}
	if !ok {
		m.user = nil
		m.token = ""
		if m.pendingUserID == "" {
			m.status = StatusAnonymous
			if err := m.store.Clear(); err != nil {
				m.log.Warn("failed to clear stale session cache", "error", err)
			}
		} else {
			m.status = StatusPendingVerification
			m.saveLocked()
		}
		return nil
	}

	// Server is authoritative for profile data.
	m.user = user
	m.status = StatusAuthenticated
	m.pendingUserID = ""
	m.pendingEmail = ""
	m.saveLocked()
	return nil
}

// Login submits credentials. On success the session moves to
// PendingVerification; the caller is not authenticated until the passcode
// is verified. State is unchanged on failure.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.token = ""
	m.pendingUserID = result.PendingUserID
	m.pendingEmail = email
	m.status = StatusPendingVerification
	m.saveLocked()
	return nil
}

// VerifyPasscode completes the second factor. It fails immediately with
// NoPendingSession when no verification is outstanding; this guards against
// a caller invoking verification without a prior login, and no network call
// is made. On backend rejection the pending marker is retained so the user
// can retry with a fresh code.
func (m *Manager) VerifyPasscode(ctx context.Context, code string) error {
	m.mu.Lock()
	pendingID := m.pendingUserID
	m.mu.Unlock()
	if pendingID == "" {
		return &sdk.Error{Kind: sdk.KindNoPendingSession, Message: "no passcode verification in progress; log in first"}
	}

	result, err := m.api.VerifyPasscode(ctx, pendingID, code)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = result.User
	m.token = result.Token
	m.pendingUserID = ""
	m.pendingEmail = ""
	m.status = StatusAuthenticated
	m.saveLocked()
	return nil
}

// ResendPasscode re-triggers passcode issuance for the outstanding
// verification. The session status does not change.
func (m *Manager) ResendPasscode(ctx context.Context) error {
	m.mu.Lock()
	pendingID := m.pendingUserID
	m.mu.Unlock()
	if pendingID == "" {
		return &sdk.Error{Kind: sdk.KindNoPendingSession, Message: "no passcode verification in progress; log in first"}
	}
	return m.api.ResendPasscode(ctx, pendingID)
}

// Logout informs the backend best-effort, then clears the durable cache and
// resets to Anonymous. Network failure is swallowed: the user's intent to
// leave the device logged out overrides connectivity.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Debug("server-side logout failed, clearing local session anyway", "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.token = ""
	m.pendingUserID = ""
	m.pendingEmail = ""
	m.status = StatusAnonymous
	if err := m.store.Clear(); err != nil {
		return err
	}
	return nil
}

// Ready reports whether bootstrap has completed. Route decisions must not
// be evaluated before this returns true, or they would act on a stale
// Anonymous default.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bootstrapped && !m.loading
}

// Status returns the current authentication status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// User returns the authenticated user, or nil.
func (m *Manager) User() *sdk.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// RoleLabel returns the authenticated user's role label, or "".
func (m *Manager) RoleLabel() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return ""
	}
	return m.user.Role
}

// PendingEmail returns the identifier submitted with the outstanding login.
func (m *Manager) PendingEmail() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingEmail
}

// Token returns the ambient bearer credential, or "".
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) applySnapshotLocked(snap *Snapshot) {
	m.token = snap.Token
	switch {
	case snap.User != nil:
		m.user = snap.User
		m.status = StatusAuthenticated
	case snap.PendingUserID != "":
		m.pendingUserID = snap.PendingUserID
		m.pendingEmail = snap.PendingEmail
		m.status = StatusPendingVerification
	default:
		m.status = StatusAnonymous
	}
}

// saveLocked mirrors the in-memory state to the durable store. The cache is
// best-effort: a write failure degrades warm-start behavior, not the
// session itself.
func (m *Manager) saveLocked() {
	snap := &Snapshot{
		User:          m.user,
		Token:         m.token,
		PendingUserID: m.pendingUserID,
		PendingEmail:  m.pendingEmail,
	}
	if err := m.store.Save(snap); err != nil {
		m.log.Warn("failed to persist session cache", "error", err)
	}
}
