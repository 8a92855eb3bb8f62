package document

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a document from a YAML file. The returned document's URI is
// set to the path it was loaded from.
//
// Load failures are recoverable by design: the editor falls back to an
// empty document and keeps the session alive rather than aborting.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	doc.URI = path
	stampSource(doc, path)
	return doc, nil
}

// Read decodes a document from YAML. Read does not close r.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

// Write serializes the document as YAML to path and updates its URI.
// Validation warnings do not block the write; callers log them and
// proceed (a half-valid document on disk beats losing edits).
func Write(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteTo(doc, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	doc.URI = path
	return nil
}

// WriteTo encodes the document as YAML to w.
func WriteTo(doc *Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ImportLibrary merges the children of lib into doc. Imported elements
// keep lib's URI as their source, which is how the editor distinguishes
// read-only library content from locally authored elements.
func ImportLibrary(doc, lib *Document) {
	for _, n := range lib.Nodes {
		dup := CopyNode(n, n.ElemName)
		dup.Source = lib.URI
		doc.Nodes = append(doc.Nodes, dup)
	}
	for _, g := range lib.Graphs {
		dup := CopyGraph(g, g.ElemName)
		dup.Source = lib.URI
		doc.Graphs = append(doc.Graphs, dup)
	}
	for _, in := range lib.Inputs {
		dup := CopyInput(in, in.ElemName)
		dup.Source = lib.URI
		doc.Inputs = append(doc.Inputs, dup)
	}
	for _, out := range lib.Outputs {
		dup := CopyOutput(out, out.ElemName)
		dup.Source = lib.URI
		doc.Outputs = append(doc.Outputs, dup)
	}
}

// stampSource records the load path on every element that does not
// already carry a library source.
func stampSource(doc *Document, uri string) {
	for _, n := range doc.Nodes {
		if n.Source == "" {
			n.Source = uri
		}
	}
	for _, g := range doc.Graphs {
		if g.Source == "" {
			g.Source = uri
		}
	}
	for _, in := range doc.Inputs {
		if in.Source == "" {
			in.Source = uri
		}
	}
	for _, out := range doc.Outputs {
		if out.Source == "" {
			out.Source = uri
		}
	}
}
