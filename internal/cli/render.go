package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shadegraph/pkg/cache"
	"github.com/matzehuels/shadegraph/pkg/render"
)

// Supported render formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// artifactTTL is how long rendered artifacts stay cached.
const artifactTTL = 7 * 24 * time.Hour

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats  string
		output   string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Export a document's graph as DOT, SVG, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProgress(c.Logger)

			doc, g, err := c.buildGraph(args[0])
			if err != nil {
				return err
			}
			printStats(g.NodeCount(), g.EdgeCount())

			store, err := c.newCache(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			dot := render.ToDOT(g, render.Options{Detailed: detailed})
			base := output
			if base == "" {
				base = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			}

			for _, format := range parseFormats(formats) {
				path := base + "." + format
				data, err := c.renderFormat(cmd.Context(), store, doc.DocName, dot, format)
				if err != nil {
					return fmt.Errorf("render %s: %w", format, err)
				}
				if err := os.WriteFile(path, data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}

			p.done(fmt.Sprintf("Rendered %d nodes", g.NodeCount()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", formatSVG, "output formats (comma-separated: dot,svg,png)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path without extension (default: document path)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include pin rows in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")
	return cmd
}

// renderFormat produces one output format, consulting the artifact
// cache keyed on the DOT content hash.
func (c *CLI) renderFormat(ctx context.Context, store cache.Cache, docName, dot, format string) ([]byte, error) {
	if format == formatDOT {
		return []byte(dot), nil
	}

	key := cache.ArtifactKey(cache.Hash([]byte(dot)), format)
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		c.Logger.Debug("artifact cache hit", "doc", docName, "format", format)
		return data, nil
	}

	var data []byte
	var err error
	switch format {
	case formatSVG:
		data, err = render.SVG(ctx, dot)
	case formatPNG:
		data, err = render.PNG(ctx, dot)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Set(ctx, key, data, artifactTTL); err != nil {
		c.Logger.Debug("artifact cache write failed", "err", err)
	}
	return data, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
