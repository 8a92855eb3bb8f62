package document

// PatchNodeRefs rewrites every connection in the scope that references
// the node name old so it points at name new instead. This covers node
// inputs, graph-level outputs, and declared subgraph outputs; it is what
// keeps connections intact across a rename.
func PatchNodeRefs(scope Scope, old, new string) {
	for _, n := range scope.ChildNodes() {
		for _, in := range n.Inputs {
			if in.NodeName == old {
				in.NodeName = new
			}
		}
	}
	for _, out := range scope.ChildOutputs() {
		if out.NodeName == old {
			out.NodeName = new
		}
	}
	for _, in := range scope.ChildInputs() {
		if in.NodeName == old {
			in.NodeName = new
		}
	}
}

// PatchGraphRefs rewrites nodegraph references at the document level
// when a nested node-graph is renamed.
func PatchGraphRefs(d *Document, old, new string) {
	for _, n := range d.Nodes {
		for _, in := range n.Inputs {
			if in.GraphName == old {
				in.GraphName = new
			}
		}
	}
	for _, out := range d.Outputs {
		if out.NodeName == old {
			out.NodeName = new
		}
	}
}

// PatchInterfaceRefs rewrites interface-name bindings inside a subgraph
// when one of its declared inputs is renamed.
func PatchInterfaceRefs(g *NodeGraph, old, new string) {
	for _, n := range g.Nodes {
		for _, in := range n.Inputs {
			if in.InterfaceName == old {
				in.InterfaceName = new
			}
		}
	}
}

// PatchOutputRefs rewrites connected-output references in the scope when
// an output element is renamed.
func PatchOutputRefs(scope Scope, node, old, new string) {
	for _, n := range scope.ChildNodes() {
		for _, in := range n.Inputs {
			if in.OutputName == old && in.NodeName == node {
				in.OutputName = new
			}
		}
	}
}
