// Package matter binds a working directory to a case, so case-scoped
// commands run without repeating --case on every invocation.
package matter

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

const (
	// FileName is the name of the per-directory context file.
	FileName = ".lexmatter"
	// FileVersion is the current schema version.
	FileVersion = "1"
)

// Context links a directory to a case on a specific server.
type Context struct {
	Version    string    `json:"version"`
	CaseGUID   string    `json:"case_guid"`
	CaseNumber string    `json:"case_number,omitempty"`
	ServerURL  string    `json:"server_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks the context for structural problems.
func (c *Context) Validate() error {
	if c.Version != FileVersion {
		return fmt.Errorf("unsupported %s file version: %s (expected %s)", FileName, c.Version, FileVersion)
	}
	if c.CaseGUID == "" {
		return fmt.Errorf("case_guid is required")
	}
	if _, err := uuid.Parse(c.CaseGUID); err != nil {
		return fmt.Errorf("invalid case_guid format: %w", err)
	}
	return nil
}

// Read loads the context file from the current directory. A missing file
// returns (nil, nil).
func Read() (*Context, error) {
	data, err := os.ReadFile(FileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s file: %w", FileName, err)
	}
	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("corrupted %s file (invalid JSON): %w", FileName, err)
	}
	if err := ctx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s file: %w", FileName, err)
	}
	return &ctx, nil
}

// Write stores the context file atomically via temp file + rename.
func Write(ctx *Context) error {
	if err := ctx.Validate(); err != nil {
		return fmt.Errorf("invalid context: %w", err)
	}
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}
	data = append(data, '\n')

	tmpPath := FileName + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s.tmp: %w", FileName, err)
	}
	if err := os.Rename(tmpPath, FileName); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s.tmp: %w", FileName, err)
	}
	return nil
}

// ResolveCase picks the case GUID for a command: an explicit flag wins,
// the directory context is the fallback.
func ResolveCase(explicit string, dirCtx *Context) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if dirCtx != nil {
		return dirCtx.CaseGUID, nil
	}
	return "", fmt.Errorf("case identifier required: pass --case or run in a directory with a %s context", FileName)
}
