package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/annthusiaast/lexctl/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "session.json"))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStoreAt(path)

	in := &Snapshot{
		User: &sdk.User{
			ID:      "42",
			Role:    "Lawyer",
			Name:    "ada",
			Email:   "ada@firm.example",
			Profile: map[string]any{"user_id": "42", "user_role": "Lawyer"},
		},
		Token: "tok-1",
	}
	require.NoError(t, store.Save(in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, out)
	require.NotNil(t, out.User)
	assert.Equal(t, "42", out.User.ID)
	assert.Equal(t, "Lawyer", out.User.Role)
	assert.Equal(t, "tok-1", out.Token)
}

func TestFileStorePendingOnly(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Save(&Snapshot{
		PendingUserID: "42",
		PendingEmail:  "ada@firm.example",
	}))

	out, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Nil(t, out.User)
	assert.Empty(t, out.Token)
	assert.Equal(t, "42", out.PendingUserID)
	assert.Equal(t, "ada@firm.example", out.PendingEmail)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStoreAt(path)

	require.NoError(t, store.Save(&Snapshot{Token: "tok"}))
	require.NoError(t, store.Clear())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-clean store is not an error.
	require.NoError(t, store.Clear())
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStoreAt(path)
	_, err := store.Load()
	assert.Error(t, err)
}
