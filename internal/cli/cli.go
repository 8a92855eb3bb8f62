// Package cli implements the shadegraph command-line interface.
//
// This package provides commands for editing shading-network documents
// in an interactive TUI, rendering them as diagrams, validating them,
// and serving them over HTTP. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - edit: Open a document in the interactive node-graph editor
//   - render: Export a document's graph as DOT, SVG, or PNG
//   - layout: Run auto-layout and persist node positions
//   - validate: Check a document and print warnings
//   - serve: Expose documents and rendered graphs over HTTP
//   - cache: Manage the definition-library and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context for structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shadegraph/pkg/buildinfo"
	"github.com/matzehuels/shadegraph/pkg/cache"
	"github.com/matzehuels/shadegraph/pkg/document"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/nodedef"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "shadegraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config
}

// New creates a new CLI instance with a default logger and loaded config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: LoadConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "shadegraph",
		Short:        "Shadegraph edits shading networks as node graphs",
		Long:         `Shadegraph is a node-graph editor for shading-network documents: build, inspect, lay out and render material networks from the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.editCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Loading
// =============================================================================

// loadRegistry builds the node-definition registry: the embedded
// standard library plus any library files named in the config.
func (c *CLI) loadRegistry() (*nodedef.Registry, error) {
	reg, err := nodedef.StandardLibrary()
	if err != nil {
		return nil, err
	}
	for _, path := range c.Config.Libraries {
		if err := nodedef.LoadLibraryFile(reg, path); err != nil {
			c.Logger.Warn("skipping library", "path", path, "err", err)
		}
	}
	return reg, nil
}

// loadDocument loads a document, degrading to an empty one on failure
// so the editor always opens.
func (c *CLI) loadDocument(path string) *document.Document {
	doc, err := document.Load(path)
	if err != nil {
		c.Logger.Error("load failed, starting empty", "path", path, "err", err)
		doc = document.New(filepath.Base(path))
		doc.URI = path
	}
	return doc
}

// buildGraph loads a document plus registry and builds the root graph.
func (c *CLI) buildGraph(path string) (*document.Document, *graph.Graph, error) {
	reg, err := c.loadRegistry()
	if err != nil {
		return nil, nil, err
	}
	doc := c.loadDocument(path)
	b := &graph.Builder{
		Doc:      doc,
		Registry: reg,
		Local:    func(source string) bool { return source == "" || source == doc.URI },
	}
	return doc, b.BuildDocument(), nil
}

// newCache selects the configured cache backend.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/shadegraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
