package document

// Position is a persisted node position in normalized layout units.
// Coordinates are divided by the editor's default node size before being
// written, so documents stay independent of the UI's pixel metrics.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Node is a concrete node instance: an application of a node definition
// (category) at a given type, with per-input values and connections.
type Node struct {
	ElemName string    `yaml:"name"`
	Category string    `yaml:"category"`
	Type     string    `yaml:"type,omitempty"`
	Inputs   []*Input  `yaml:"inputs,omitempty"`
	Outputs  []*Output `yaml:"outputs,omitempty"`
	Pos      *Position `yaml:"pos,omitempty"`
	Source   string    `yaml:"-"`
}

func (n *Node) childName() string { return n.ElemName }

// InputByName returns the node's input with the given name, or nil.
// Only explicitly materialized inputs are present; inputs still at their
// definition default are absent from the document.
func (n *Node) InputByName(name string) *Input {
	for _, in := range n.Inputs {
		if in.ElemName == name {
			return in
		}
	}
	return nil
}

// OutputByName returns the node's output with the given name, or nil.
func (n *Node) OutputByName(name string) *Output {
	for _, out := range n.Outputs {
		if out.ElemName == name {
			return out
		}
	}
	return nil
}

// AddInput materializes an input on the node and returns it. If an input
// with that name already exists it is returned unchanged.
func (n *Node) AddInput(name, typ string) *Input {
	if in := n.InputByName(name); in != nil {
		return in
	}
	in := &Input{ElemName: name, Type: typ}
	n.Inputs = append(n.Inputs, in)
	return in
}

// RemoveInput removes the named input from the node, if present.
func (n *Node) RemoveInput(name string) {
	n.Inputs = removeNamed(n.Inputs, name)
}

// NodeGraph is a nested subgraph: a reusable graph of nodes exposed as a
// single node at the parent scope. Its declared inputs and outputs form
// the wrapper node's pin signature.
type NodeGraph struct {
	ElemName string    `yaml:"name"`
	NodeDef  string    `yaml:"nodedef,omitempty"`
	Nodes    []*Node   `yaml:"nodes,omitempty"`
	Inputs   []*Input  `yaml:"inputs,omitempty"`
	Outputs  []*Output `yaml:"outputs,omitempty"`
	Pos      *Position `yaml:"pos,omitempty"`
	Source   string    `yaml:"-"`
}

func (g *NodeGraph) childName() string { return g.ElemName }

// Name returns the node-graph's element name.
func (g *NodeGraph) Name() string { return g.ElemName }

// SourceURI returns the URI of the library the graph came from, or ""
// for graphs authored in the working document.
func (g *NodeGraph) SourceURI() string { return g.Source }

// ChildNodes returns the subgraph's concrete node children.
func (g *NodeGraph) ChildNodes() []*Node { return g.Nodes }

// ChildInputs returns the subgraph's declared inputs.
func (g *NodeGraph) ChildInputs() []*Input { return g.Inputs }

// ChildOutputs returns the subgraph's declared outputs.
func (g *NodeGraph) ChildOutputs() []*Output { return g.Outputs }

// NodeByName returns the subgraph's node child with the given name, or nil.
func (g *NodeGraph) NodeByName(name string) *Node {
	for _, n := range g.Nodes {
		if n.ElemName == name {
			return n
		}
	}
	return nil
}

// InputByName returns the subgraph's declared input with the given name, or nil.
func (g *NodeGraph) InputByName(name string) *Input {
	for _, in := range g.Inputs {
		if in.ElemName == name {
			return in
		}
	}
	return nil
}

// OutputByName returns the subgraph's declared output with the given name, or nil.
func (g *NodeGraph) OutputByName(name string) *Output {
	for _, out := range g.Outputs {
		if out.ElemName == name {
			return out
		}
	}
	return nil
}

// AddNode appends a node child to the subgraph.
func (g *NodeGraph) AddNode(n *Node) error {
	if err := g.checkName(n.ElemName); err != nil {
		return err
	}
	g.Nodes = append(g.Nodes, n)
	return nil
}

// AddInput appends a declared input to the subgraph.
func (g *NodeGraph) AddInput(in *Input) error {
	if err := g.checkName(in.ElemName); err != nil {
		return err
	}
	g.Inputs = append(g.Inputs, in)
	return nil
}

// AddOutput appends a declared output to the subgraph.
func (g *NodeGraph) AddOutput(out *Output) error {
	if err := g.checkName(out.ElemName); err != nil {
		return err
	}
	g.Outputs = append(g.Outputs, out)
	return nil
}

// RemoveChild removes the child element with the given name.
func (g *NodeGraph) RemoveChild(name string) {
	g.Nodes = removeNamed(g.Nodes, name)
	g.Inputs = removeNamed(g.Inputs, name)
	g.Outputs = removeNamed(g.Outputs, name)
}

// HasChild reports whether any child element uses the given name.
func (g *NodeGraph) HasChild(name string) bool {
	return g.NodeByName(name) != nil || g.InputByName(name) != nil || g.OutputByName(name) != nil
}

// ValidName returns a subgraph-unique name derived from base.
func (g *NodeGraph) ValidName(base string) string {
	return validName(base, g.HasChild)
}

func (g *NodeGraph) checkName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	if g.HasChild(name) {
		return ErrDuplicateName
	}
	return nil
}
