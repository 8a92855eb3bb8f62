// Package session persists editor workspace state between runs.
//
// A workspace records what a user was doing when they closed the
// editor: the open document, the breadcrumb trail into nested
// subgraphs, and the selected node names. The TUI restores it on the
// next launch; the HTTP server keys per-client workspaces by id for
// the shared-library deployment.
//
// Workspaces are identified by UUID and expire after a TTL so stale
// server-side state cleans itself up. The [Store] interface supports:
//   - Get/Set/Delete operations
//   - Automatic expiration checking
//   - Cleanup of expired workspaces
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for workspace operations.
var (
	// ErrNotFound is returned when a workspace does not exist.
	ErrNotFound = errors.New("workspace not found")

	// ErrExpired is returned when a workspace has exceeded its TTL.
	ErrExpired = errors.New("workspace expired")
)

// DefaultTTL is the default workspace lifetime.
const DefaultTTL = 30 * 24 * time.Hour

// Workspace stores one user's editor state.
type Workspace struct {
	ID          string    `json:"id"`
	DocumentURI string    `json:"document_uri"`
	Breadcrumbs []string  `json:"breadcrumbs,omitempty"`
	Selection   []string  `json:"selection,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsExpired returns true if the workspace has expired.
func (w *Workspace) IsExpired() bool {
	return time.Now().After(w.ExpiresAt)
}

// Store is the interface for workspace storage backends.
type Store interface {
	// Get retrieves a workspace by id.
	// Returns nil, nil if the workspace doesn't exist.
	Get(ctx context.Context, id string) (*Workspace, error)

	// Set stores a workspace.
	Set(ctx context.Context, w *Workspace) error

	// Delete removes a workspace.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired workspaces.
	Cleanup(ctx context.Context) error
}

// New creates a workspace for a document with a fresh UUID.
func New(documentURI string, ttl time.Duration) *Workspace {
	now := time.Now()
	return &Workspace{
		ID:          uuid.NewString(),
		DocumentURI: documentURI,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
	}
}
