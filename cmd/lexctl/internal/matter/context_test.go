package matter

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into a fresh directory so context file reads and
// writes stay isolated.
func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func validContext() *Context {
	now := time.Now().UTC().Truncate(time.Second)
	return &Context{
		Version:    FileVersion,
		CaseGUID:   "7b68e2f0-1f0a-4a6e-9a36-1f6cf8a2b9d4",
		CaseNumber: "2026-CV-001",
		ServerURL:  "http://localhost:8080",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Context)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Context) {}},
		{
			name:    "wrong version",
			mutate:  func(c *Context) { c.Version = "2" },
			wantErr: "unsupported",
		},
		{
			name:    "missing case guid",
			mutate:  func(c *Context) { c.CaseGUID = "" },
			wantErr: "case_guid is required",
		},
		{
			name:    "malformed case guid",
			mutate:  func(c *Context) { c.CaseGUID = "not-a-uuid" },
			wantErr: "invalid case_guid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := validContext()
			tt.mutate(ctx)
			err := ctx.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	chdirTemp(t)

	ctx, err := Read()
	require.NoError(t, err)
	assert.Nil(t, ctx)
}

func TestWriteReadRoundTrip(t *testing.T) {
	chdirTemp(t)

	in := validContext()
	require.NoError(t, Write(in))

	out, err := Read()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.CaseGUID, out.CaseGUID)
	assert.Equal(t, in.CaseNumber, out.CaseNumber)
	assert.Equal(t, in.ServerURL, out.ServerURL)

	// No temp file left behind.
	_, err = os.Stat(FileName + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteRejectsInvalidContext(t *testing.T) {
	chdirTemp(t)

	ctx := validContext()
	ctx.CaseGUID = "bogus"
	require.Error(t, Write(ctx))

	_, err := os.Stat(FileName)
	assert.True(t, os.IsNotExist(err), "invalid context must not be written")
}

func TestReadCorruptFile(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(FileName, []byte("{broken"), 0o644))

	_, err := Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupted")
}

func TestReadInvalidContent(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(FileName, []byte(`{"version":"1","case_guid":"nope","server_url":"x"}`), 0o644))

	_, err := Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestResolveCase(t *testing.T) {
	dirCtx := validContext()

	tests := []struct {
		name     string
		explicit string
		dirCtx   *Context
		want     string
		wantErr  bool
	}{
		{name: "explicit wins", explicit: "abc", dirCtx: dirCtx, want: "abc"},
		{name: "falls back to directory context", dirCtx: dirCtx, want: dirCtx.CaseGUID},
		{name: "nothing available", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveCase(tt.explicit, tt.dirCtx)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "case identifier required")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
