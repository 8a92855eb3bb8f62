package document

import "fmt"

// Validate checks the document for structural problems and returns a
// warning per finding. Warnings never block saving; the editor logs them
// and writes the document anyway.
//
// Checks: duplicate child names, connections referencing missing
// elements, and type mismatches between connected ports.
func Validate(doc *Document) []string {
	var warnings []string

	seen := map[string]bool{}
	check := func(name string) {
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("duplicate element name %q", name))
		}
		seen[name] = true
	}
	for _, n := range doc.Nodes {
		check(n.ElemName)
	}
	for _, g := range doc.Graphs {
		check(g.ElemName)
	}
	for _, in := range doc.Inputs {
		check(in.ElemName)
	}
	for _, out := range doc.Outputs {
		check(out.ElemName)
	}

	for _, n := range doc.Nodes {
		warnings = append(warnings, validateInputs(doc, n.ElemName, n.Inputs)...)
	}
	for _, out := range doc.Outputs {
		if out.NodeName != "" && doc.NodeByName(out.NodeName) == nil && doc.GraphByName(out.NodeName) == nil {
			warnings = append(warnings, fmt.Sprintf("output %q references missing node %q", out.ElemName, out.NodeName))
		}
	}

	for _, g := range doc.Graphs {
		warnings = append(warnings, validateGraph(g)...)
	}

	return warnings
}

func validateInputs(doc *Document, owner string, inputs []*Input) []string {
	var warnings []string
	for _, in := range inputs {
		switch {
		case in.GraphName != "":
			g := doc.GraphByName(in.GraphName)
			if g == nil {
				warnings = append(warnings, fmt.Sprintf("input %s.%s references missing nodegraph %q", owner, in.ElemName, in.GraphName))
				continue
			}
			if out := graphOutput(g, in.OutputName); out != nil && out.Type != in.Type {
				warnings = append(warnings, typeMismatch(owner, in, out.Type))
			}
		case in.NodeName != "":
			up := doc.NodeByName(in.NodeName)
			if up == nil {
				warnings = append(warnings, fmt.Sprintf("input %s.%s references missing node %q", owner, in.ElemName, in.NodeName))
				continue
			}
			if in.Type != "" && up.Type != "" && up.Type != in.Type && in.OutputName == "" {
				warnings = append(warnings, typeMismatch(owner, in, up.Type))
			}
		case in.OutputName != "":
			out := doc.OutputByName(in.OutputName)
			if out == nil {
				warnings = append(warnings, fmt.Sprintf("input %s.%s references missing output %q", owner, in.ElemName, in.OutputName))
				continue
			}
			if out.Type != in.Type {
				warnings = append(warnings, typeMismatch(owner, in, out.Type))
			}
		}
	}
	return warnings
}

func validateGraph(g *NodeGraph) []string {
	var warnings []string
	for _, n := range g.Nodes {
		for _, in := range n.Inputs {
			if in.NodeName != "" && g.NodeByName(in.NodeName) == nil {
				warnings = append(warnings, fmt.Sprintf("input %s/%s.%s references missing node %q", g.ElemName, n.ElemName, in.ElemName, in.NodeName))
			}
			if in.InterfaceName != "" && g.InputByName(in.InterfaceName) == nil {
				warnings = append(warnings, fmt.Sprintf("input %s/%s.%s references missing interface %q", g.ElemName, n.ElemName, in.ElemName, in.InterfaceName))
			}
		}
	}
	for _, out := range g.Outputs {
		if out.NodeName != "" && g.NodeByName(out.NodeName) == nil {
			warnings = append(warnings, fmt.Sprintf("output %s.%s references missing node %q", g.ElemName, out.ElemName, out.NodeName))
		}
	}
	return warnings
}

func graphOutput(g *NodeGraph, name string) *Output {
	if name == "" {
		if len(g.Outputs) > 0 {
			return g.Outputs[0]
		}
		return nil
	}
	return g.OutputByName(name)
}

func typeMismatch(owner string, in *Input, upType string) string {
	return fmt.Sprintf("input %s.%s type %q does not match upstream type %q", owner, in.ElemName, in.Type, upType)
}
