package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore is a file-based workspace store for the CLI editor.
// Workspaces are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based workspace store.
// If baseDir is empty, defaults to ~/.config/shadegraph/workspaces/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "shadegraph", "workspaces")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) workspacePath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.workspacePath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read workspace file: %w", err)
	}

	var w Workspace
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse workspace: %w", err)
	}

	if w.IsExpired() {
		os.Remove(path)
		return nil, nil
	}
	return &w, nil
}

func (s *FileStore) Set(ctx context.Context, w *Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal workspace: %w", err)
	}

	path := s.workspacePath(w.ID)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write workspace file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.workspacePath(id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove workspace file: %w", err)
	}
	return nil
}

func (s *FileStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read workspace dir: %w", err)
	}

	now := time.Now()
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var w Workspace
		if err := json.Unmarshal(data, &w); err != nil {
			continue
		}
		if now.After(w.ExpiresAt) {
			os.Remove(path)
		}
	}
	return nil
}

// Path returns the base directory for workspace files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

// =============================================================================
// CLI convenience wrapper
// =============================================================================

const cliWorkspaceID = "last"

// CLIStore wraps FileStore for the single-workspace CLI case: the
// editor always resumes the most recently closed workspace.
type CLIStore struct {
	store *FileStore
}

// NewCLIStore creates a store for the CLI's resume-last workspace.
func NewCLIStore() (*CLIStore, error) {
	store, err := NewFileStore("")
	if err != nil {
		return nil, err
	}
	return &CLIStore{store: store}, nil
}

// Last retrieves the most recently saved workspace, or nil.
func (c *CLIStore) Last(ctx context.Context) (*Workspace, error) {
	return c.store.Get(ctx, cliWorkspaceID)
}

// Save stores w as the workspace to resume next launch.
func (c *CLIStore) Save(ctx context.Context, w *Workspace) error {
	w.ID = cliWorkspaceID
	return c.store.Set(ctx, w)
}

// Clear removes the resume workspace.
func (c *CLIStore) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, cliWorkspaceID)
}
