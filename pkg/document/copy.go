package document

// CopyNode returns a deep copy of a node under a new name.
// Connections and literal values are preserved; the caller is
// responsible for re-pointing or clearing connections afterwards
// (paste relinks only inside the copied set).
func CopyNode(n *Node, name string) *Node {
	dup := &Node{
		ElemName: name,
		Category: n.Category,
		Type:     n.Type,
		Source:   n.Source,
	}
	for _, in := range n.Inputs {
		dup.Inputs = append(dup.Inputs, CopyInput(in, in.ElemName))
	}
	for _, out := range n.Outputs {
		dup.Outputs = append(dup.Outputs, CopyOutput(out, out.ElemName))
	}
	if n.Pos != nil {
		pos := *n.Pos
		dup.Pos = &pos
	}
	return dup
}

// CopyGraph returns a deep copy of a node-graph under a new name,
// including its children, declared inputs and declared outputs.
func CopyGraph(g *NodeGraph, name string) *NodeGraph {
	dup := &NodeGraph{
		ElemName: name,
		NodeDef:  g.NodeDef,
		Source:   g.Source,
	}
	for _, n := range g.Nodes {
		dup.Nodes = append(dup.Nodes, CopyNode(n, n.ElemName))
	}
	for _, in := range g.Inputs {
		dup.Inputs = append(dup.Inputs, CopyInput(in, in.ElemName))
	}
	for _, out := range g.Outputs {
		dup.Outputs = append(dup.Outputs, CopyOutput(out, out.ElemName))
	}
	if g.Pos != nil {
		pos := *g.Pos
		dup.Pos = &pos
	}
	return dup
}

// CopyInput returns a deep copy of an input under a new name.
func CopyInput(in *Input, name string) *Input {
	dup := *in
	dup.ElemName = name
	if in.Pos != nil {
		pos := *in.Pos
		dup.Pos = &pos
	}
	return &dup
}

// CopyOutput returns a deep copy of an output under a new name.
func CopyOutput(out *Output, name string) *Output {
	dup := *out
	dup.ElemName = name
	if out.Pos != nil {
		pos := *out.Pos
		dup.Pos = &pos
	}
	return &dup
}
