// Package nodedef provides the node-definition registry.
//
// A node definition is a typed template declaring a node category's input
// and output signature, default values, and (optionally) the identifier
// of a shader-generator implementation. The editor consults the registry
// when deriving pins for concrete nodes, when restoring an input to its
// declared default after a disconnect, and when rejecting connections to
// nodes that have no resolvable implementation.
//
// A standard definition library ships embedded in the binary; additional
// libraries can be loaded from YAML files or fetched over HTTP.
package nodedef

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Shading value types used by the standard library. Pin type tags are
// open-ended strings; these constants cover the common set.
const (
	TypeFloat        = "float"
	TypeInteger      = "integer"
	TypeBoolean      = "boolean"
	TypeColor3       = "color3"
	TypeColor4       = "color4"
	TypeVector2      = "vector2"
	TypeVector3      = "vector3"
	TypeVector4      = "vector4"
	TypeString       = "string"
	TypeFilename     = "filename"
	TypeSurface      = "surfaceshader"
	TypeDisplacement = "displacementshader"
	TypeMaterial     = "material"
)

// ErrNoImplementation is returned by [Registry.Implementation] when a
// definition has no shader-generator implementation bound.
var ErrNoImplementation = errors.New("no implementation")

// PortDef declares one typed port of a node definition.
type PortDef struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Value string `yaml:"value,omitempty"`
}

// NodeDef is a typed template for a node category.
//
// Definitions are distinguished by (Category, Type): "mix" exists once
// per output type. Group is the palette section the category appears
// under in the editor's add-node menu.
type NodeDef struct {
	Name     string    `yaml:"name"`
	Category string    `yaml:"category"`
	Type     string    `yaml:"type"`
	Group    string    `yaml:"group,omitempty"`
	Impl     string    `yaml:"impl,omitempty"`
	Inputs   []PortDef `yaml:"inputs,omitempty"`
	Outputs  []PortDef `yaml:"outputs,omitempty"`
}

// Input returns the declared input with the given name, or nil.
func (d *NodeDef) Input(name string) *PortDef {
	for i := range d.Inputs {
		if d.Inputs[i].Name == name {
			return &d.Inputs[i]
		}
	}
	return nil
}

// Output returns the declared output with the given name, or nil.
// An empty name returns the first (primary) output.
func (d *NodeDef) Output(name string) *PortDef {
	if name == "" && len(d.Outputs) > 0 {
		return &d.Outputs[0]
	}
	for i := range d.Outputs {
		if d.Outputs[i].Name == name {
			return &d.Outputs[i]
		}
	}
	return nil
}

// DefaultValue returns the declared default for the named input, or ""
// when the input is unknown or has no default.
func (d *NodeDef) DefaultValue(input string) string {
	if in := d.Input(input); in != nil {
		return in.Value
	}
	return ""
}

// library is the YAML shape of a definition library file.
type library struct {
	NodeDefs []*NodeDef `yaml:"nodedefs"`
}

// ParseLibrary decodes a YAML definition library from r.
func ParseLibrary(r io.Reader) ([]*NodeDef, error) {
	var lib library
	if err := yaml.NewDecoder(r).Decode(&lib); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	for _, d := range lib.NodeDefs {
		if d.Name == "" {
			d.Name = fmt.Sprintf("ND_%s_%s", d.Category, d.Type)
		}
		if d.Group == "" {
			d.Group = "extra"
		}
	}
	return lib.NodeDefs, nil
}

// DisplayName strips the conventional "ND_" prefix from a definition
// name for UI listings.
func DisplayName(defName string) string {
	return strings.TrimPrefix(defName, "ND_")
}
