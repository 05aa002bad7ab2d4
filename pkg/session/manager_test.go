package session_test

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/annthusiaast/lexctl/internal/apitest"
	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/annthusiaast/lexctl/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func tempStore(t *testing.T) *session.FileStore {
	t.Helper()
	return session.NewFileStoreAt(filepath.Join(t.TempDir(), "session.json"))
}

func bearerClient(token string) *http.Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(context.Background(), source)
}

// requireSingleStatus asserts the invariant that user and pending marker
// are never both set.
func requireSingleStatus(t *testing.T, store session.Store) {
	t.Helper()
	snap, err := store.Load()
	require.NoError(t, err)
	if snap == nil {
		return
	}
	if snap.User != nil {
		assert.Empty(t, snap.PendingUserID, "user and pending id must never both be set")
	}
}

func TestLoginMovesToPendingVerification(t *testing.T) {
	server := apitest.New(t)
	account := server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")

	store := tempStore(t)
	m := session.NewManager(sdk.NewClient(server.URL), store)

	err := m.Login(context.Background(), "ada@firm.example", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, session.StatusPendingVerification, m.Status())
	assert.Nil(t, m.User())
	assert.Equal(t, "ada@firm.example", m.PendingEmail())

	snap, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, account.ID, snap.PendingUserID)
	assert.Equal(t, "ada@firm.example", snap.PendingEmail)
	assert.Nil(t, snap.User)
	requireSingleStatus(t, store)
}

func TestLoginRejectedLeavesStateUnchanged(t *testing.T) {
	server := apitest.New(t)
	server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")

	store := tempStore(t)
	m := session.NewManager(sdk.NewClient(server.URL), store)

	err := m.Login(context.Background(), "ada@firm.example", "wrong")
	require.Error(t, err)
	assert.Equal(t, sdk.KindInvalidCredentials, sdk.KindOf(err))
	assert.Equal(t, session.StatusAnonymous, m.Status())

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestVerifyPasscodeAuthenticates(t *testing.T) {
	server := apitest.New(t)
	server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")

	store := tempStore(t)
	m := session.NewManager(sdk.NewClient(server.URL), store)

	require.NoError(t, m.Login(context.Background(), "ada@firm.example", "hunter2"))
	require.NoError(t, m.VerifyPasscode(context.Background(), "123456"))

	assert.Equal(t, session.StatusAuthenticated, m.Status())
	require.NotNil(t, m.User())
	assert.Equal(t, "Lawyer", m.User().Role)
	assert.NotEmpty(t, m.Token())

	snap, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.NotNil(t, snap.User)
	assert.Empty(t, snap.PendingUserID, "pending id must be cleared after verification")
	assert.Empty(t, snap.PendingEmail)
	requireSingleStatus(t, store)
}

func TestVerifyPasscodeRejectedKeepsPending(t *testing.T) {
	server := apitest.New(t)
	server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")

	store := tempStore(t)
	m := session.NewManager(sdk.NewClient(server.URL), store)

	require.NoError(t, m.Login(context.Background(), "ada@firm.example", "hunter2"))

	err := m.VerifyPasscode(context.Background(), "000000")
	require.Error(t, err)
	assert.Equal(t, sdk.KindVerificationFailed, sdk.KindOf(err))

	// Retry with a fresh code stays possible.
	assert.Equal(t, session.StatusPendingVerification, m.Status())
	require.NoError(t, m.VerifyPasscode(context.Background(), "123456"))
	assert.Equal(t, session.StatusAuthenticated, m.Status())
}

func TestVerifyPasscodeWithoutLogin(t *testing.T) {
	// The backend is unreachable on purpose: the guard must fire before
	// any network call.
	store := tempStore(t)
	m := session.NewManager(sdk.NewClient("http://127.0.0.1:1"), store)

	err := m.VerifyPasscode(context.Background(), "123456")
	require.Error(t, err)
	assert.Equal(t, sdk.KindNoPendingSession, sdk.KindOf(err))
}

func TestResendPasscode(t *testing.T) {
	server := apitest.New(t)
	account := server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")

	store := tempStore(t)
	m := session.NewManager(sdk.NewClient(server.URL), store)

	require.NoError(t, m.Login(context.Background(), "ada@firm.example", "hunter2"))
	require.NoError(t, m.ResendPasscode(context.Background()))
	require.NoError(t, m.ResendPasscode(context.Background()))

	assert.Equal(t, 2, server.ResendCount(account.ID))
	assert.Equal(t, session.StatusPendingVerification, m.Status())
}

func TestResendPasscodeWithoutLogin(t *testing.T) {
	store := tempStore(t)
	m := session.NewManager(sdk.NewClient("http://127.0.0.1:1"), store)

	err := m.ResendPasscode(context.Background())
	require.Error(t, err)
	assert.Equal(t, sdk.KindNoPendingSession, sdk.KindOf(err))
}

func TestBootstrapConfirmsCachedSession(t *testing.T) {
	server := apitest.New(t)
	account := server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")
	token := server.IssueToken(account)

	store := tempStore(t)
	require.NoError(t, store.Save(&session.Snapshot{
		User:  &sdk.User{ID: account.ID, Role: "Lawyer", Profile: map[string]any{"user_id": account.ID, "user_role": "Lawyer"}},
		Token: token,
	}))

	api := sdk.NewClient(server.URL, sdk.WithHTTPClient(bearerClient(token)))
	m := session.NewManager(api, store)

	assert.False(t, m.Ready())
	require.NoError(t, m.Bootstrap(context.Background()))
	assert.True(t, m.Ready())

	assert.Equal(t, session.StatusAuthenticated, m.Status())
	require.NotNil(t, m.User())
	// Server copy is authoritative for profile data.
	assert.Equal(t, "ada@firm.example", m.User().Email)
}

func TestBootstrapClearsInvalidCachedSession(t *testing.T) {
	server := apitest.New(t)
	account := server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")
	token := server.IssueToken(account)
	server.RevokeAll()

	store := tempStore(t)
	require.NoError(t, store.Save(&session.Snapshot{
		User:  &sdk.User{ID: account.ID, Role: "Lawyer", Profile: map[string]any{"user_id": account.ID}},
		Token: token,
	}))

	api := sdk.NewClient(server.URL, sdk.WithHTTPClient(bearerClient(token)))
	m := session.NewManager(api, store)

	require.NoError(t, m.Bootstrap(context.Background()))

	assert.Equal(t, session.StatusAnonymous, m.Status())
	assert.Nil(t, m.User())

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap, "stale cached user must be removed")
}

func TestBootstrapSurvivesNetworkFailure(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save(&session.Snapshot{
		User:  &sdk.User{ID: "41", Role: "Lawyer", Profile: map[string]any{"user_id": "41", "user_role": "Lawyer"}},
		Token: "stale-token",
	}))

	// Reconciliation is advisory: an unreachable backend falls back to
	// the optimistically hydrated state.
	m := session.NewManager(sdk.NewClient("http://127.0.0.1:1"), store)
	require.NoError(t, m.Bootstrap(context.Background()))

	assert.True(t, m.Ready())
	assert.Equal(t, session.StatusAuthenticated, m.Status())
	require.NotNil(t, m.User())
	assert.Equal(t, "Lawyer", m.User().Role)
}

func TestBootstrapIdempotent(t *testing.T) {
	server := apitest.New(t)
	account := server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")
	token := server.IssueToken(account)

	store := tempStore(t)
	require.NoError(t, store.Save(&session.Snapshot{
		User:  &sdk.User{ID: account.ID, Role: "Lawyer", Profile: map[string]any{"user_id": account.ID}},
		Token: token,
	}))

	api := sdk.NewClient(server.URL, sdk.WithHTTPClient(bearerClient(token)))
	m := session.NewManager(api, store)

	require.NoError(t, m.Bootstrap(context.Background()))
	first := m.Status()
	require.NoError(t, m.Bootstrap(context.Background()))
	assert.Equal(t, first, m.Status())
}

func TestBootstrapKeepsPendingVerification(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save(&session.Snapshot{
		PendingUserID: "42",
		PendingEmail:  "ada@firm.example",
	}))

	// A pending-only cache carries no credential, so there is nothing to
	// reconcile; the half-completed login must survive the restart.
	m := session.NewManager(sdk.NewClient("http://127.0.0.1:1"), store)
	require.NoError(t, m.Bootstrap(context.Background()))

	assert.Equal(t, session.StatusPendingVerification, m.Status())
	assert.Equal(t, "ada@firm.example", m.PendingEmail())
}

func TestLogoutAlwaysReachesAnonymous(t *testing.T) {
	tests := []struct {
		name      string
		reachable bool
	}{
		{name: "backend reachable", reachable: true},
		{name: "backend unreachable", reachable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var api *sdk.Client
			if tt.reachable {
				server := apitest.New(t)
				server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")
				api = sdk.NewClient(server.URL)
			} else {
				api = sdk.NewClient("http://127.0.0.1:1")
			}

			store := tempStore(t)
			require.NoError(t, store.Save(&session.Snapshot{
				User:  &sdk.User{ID: "41", Role: "Lawyer", Profile: map[string]any{"user_id": "41"}},
				Token: "token",
			}))

			m := session.NewManager(api, store)
			require.NoError(t, m.Bootstrap(context.Background()))
			require.NoError(t, m.Logout(context.Background()))

			assert.Equal(t, session.StatusAnonymous, m.Status())
			assert.Nil(t, m.User())
			assert.Empty(t, m.Token())

			snap, err := store.Load()
			require.NoError(t, err)
			assert.Nil(t, snap, "all durable keys must be removed")
		})
	}
}

func TestFullFlowMaintainsSingleStatus(t *testing.T) {
	server := apitest.New(t)
	server.AddAccount("ada@firm.example", "hunter2", "Lawyer", "123456")

	store := tempStore(t)
	m := session.NewManager(sdk.NewClient(server.URL), store)

	require.NoError(t, m.Login(context.Background(), "ada@firm.example", "hunter2"))
	requireSingleStatus(t, store)
	require.NoError(t, m.VerifyPasscode(context.Background(), "123456"))
	requireSingleStatus(t, store)
	require.NoError(t, m.Logout(context.Background()))
	requireSingleStatus(t, store)
	assert.Equal(t, session.StatusAnonymous, m.Status())
}
