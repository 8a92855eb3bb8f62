package nodedef

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
)

//go:embed stdlib.yaml
var stdlibYAML []byte

// StandardLibrary returns a registry preloaded with the embedded
// standard definition library.
func StandardLibrary() (*Registry, error) {
	defs, err := ParseLibrary(bytes.NewReader(stdlibYAML))
	if err != nil {
		return nil, fmt.Errorf("standard library: %w", err)
	}
	r := NewRegistry()
	r.Add(defs...)
	return r, nil
}

// LoadLibraryFile parses a definition library from a YAML file and adds
// its definitions to the registry.
func LoadLibraryFile(r *Registry, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open library %s: %w", path, err)
	}
	defer f.Close()

	defs, err := ParseLibrary(f)
	if err != nil {
		return fmt.Errorf("library %s: %w", path, err)
	}
	r.Add(defs...)
	return nil
}
