// Package pkg provides the core libraries for the Shadegraph node-graph editor.
//
// # Overview
//
// Shadegraph is an interactive editor for shading-network documents:
// materials described as typed nodes wired together through typed ports.
// The pkg directory is organized into three main areas:
//
//  1. Domain model - documents, node definitions, the UI-facing graph
//  2. Editing - synchronization engine, auto-layout, navigation
//  3. Infrastructure - caching, sessions, rendering, preview bridge
//
// # Architecture
//
// The typical data flow through the editor:
//
//	Document (pkg/document)
//	         ↓
//	    [graph] builder (nodes, pins, edges for the active scope)
//	         ↓
//	    UI shell renders from the graph; user acts
//	         ↓
//	    [editor] session (mutates document + graph transactionally)
//	         ↓
//	    [layout] engine (deterministic positions)
//	         ↓
//	    [render] / [preview] (DOT, SVG, PNG, material recompile)
//
// # Main Packages
//
// [document] - The persistent shading-network document: typed elements,
// named connections, normalized positions, YAML and MongoDB stores,
// library import, validation.
//
// [nodedef] - Node-definition registry: typed port signatures, defaults,
// shader-generator implementation lookup, embedded standard library.
//
// [graph] - The UI-facing graph for one document scope: nodes with a
// sealed variant union, typed pins, a deduplicated edge index, and a
// pure link derivation for rendering. Rebuilt in full by the builder
// whenever the scope changes.
//
// [editor] - The synchronization engine. A Session owns the document,
// the active graph, selection, clipboard, notices, and the navigation
// stack, and translates discrete UI actions (connect, disconnect,
// delete, copy/paste, rename, add) into document and graph mutations.
//
// [layout] - Deterministic auto-layout: topological level assignment
// from terminal nodes, fixed column spacing, parent-centered vertical
// placement, and a trailing column for unconnected graph inputs.
//
// [render] - Graph export to Graphviz DOT and rendered SVG/PNG.
//
// [preview] - The narrow interface to the render/preview collaborator
// (set document, update materials, modify uniforms, compile flag).
//
// [cache] - File, Redis and null cache backends for fetched definition
// libraries and rendered artifacts.
//
// [session] - Per-user workspace state (open document, breadcrumbs)
// persisted between editor runs.
//
// [httputil] - Retrying HTTP fetch used for remote definition libraries.
//
// [errors] - Structured error codes shared by CLI, TUI and HTTP API.
//
// [observability] - Hook registry for editor and cache instrumentation.
//
// # Quick Start
//
// Load a document and edit it programmatically:
//
//	doc, _ := document.Load("material.yaml")
//	registry, _ := nodedef.StandardLibrary()
//	sess := editor.NewSession(doc, registry, preview.Discard(), nil)
//	sess.AutoLayout()
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/graph/...    # Specific package
//
// [document]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/document
// [nodedef]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/nodedef
// [graph]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/graph
// [editor]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/editor
// [layout]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/render
// [preview]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/preview
// [cache]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/session
// [httputil]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/shadegraph/pkg/observability
package pkg
