package document

// Input is a typed value port. It appears in three places: materialized
// on a concrete node (carrying a literal value or a connection), declared
// on a node-graph (part of the subgraph's exposed signature), or at the
// top level of a document (a graph-level input).
//
// Exactly one of the connection fields is set on a connected input:
//
//   - NodeName: upstream is a concrete node in the same scope
//   - OutputName (with or without NodeName): upstream is a named output,
//     either a standalone output element or a specific output of a
//     multi-output node or subgraph
//   - GraphName: upstream is a nested node-graph at the parent scope
//   - InterfaceName: the input forwards from the enclosing subgraph's
//     own declared input of that name
//
// A connected input carries no literal Value; connecting clears it and
// disconnecting restores the node definition's default.
type Input struct {
	ElemName      string    `yaml:"name"`
	Type          string    `yaml:"type"`
	Value         string    `yaml:"value,omitempty"`
	NodeName      string    `yaml:"node,omitempty"`
	GraphName     string    `yaml:"nodegraph,omitempty"`
	OutputName    string    `yaml:"output,omitempty"`
	InterfaceName string    `yaml:"interface,omitempty"`
	Pos           *Position `yaml:"pos,omitempty"`
	Source        string    `yaml:"-"`
}

func (in *Input) childName() string { return in.ElemName }

// Connected reports whether the input draws its value from another
// element rather than a literal.
func (in *Input) Connected() bool {
	return in.NodeName != "" || in.GraphName != "" || in.OutputName != "" || in.InterfaceName != ""
}

// ConnectNode connects the input to the named upstream node, clearing
// every other connection field and the literal value.
func (in *Input) ConnectNode(node string) {
	in.clear()
	in.NodeName = node
}

// ConnectOutput connects the input to a named output. node may be empty
// for standalone output elements; graph is set when the output belongs
// to a nested node-graph.
func (in *Input) ConnectOutput(node, graph, output string) {
	in.clear()
	in.NodeName = node
	in.GraphName = graph
	in.OutputName = output
}

// BindInterface forwards the input from the enclosing subgraph's
// declared input of the given name.
func (in *Input) BindInterface(name string) {
	in.clear()
	in.InterfaceName = name
}

// Disconnect removes every connection field and sets the literal value,
// typically the node definition's declared default.
func (in *Input) Disconnect(defaultValue string) {
	in.clear()
	in.Value = defaultValue
}

func (in *Input) clear() {
	in.Value = ""
	in.NodeName = ""
	in.GraphName = ""
	in.OutputName = ""
	in.InterfaceName = ""
}

// Output is a typed result port: declared on a concrete node or a
// node-graph, or standing alone at the top level of a document (where it
// marks a renderable terminal and may itself reference an upstream node).
type Output struct {
	ElemName   string    `yaml:"name"`
	Type       string    `yaml:"type"`
	NodeName   string    `yaml:"node,omitempty"`
	OutputName string    `yaml:"output,omitempty"`
	Pos        *Position `yaml:"pos,omitempty"`
	Source     string    `yaml:"-"`
}

func (out *Output) childName() string { return out.ElemName }

// Connected reports whether the output references an upstream node.
func (out *Output) Connected() bool { return out.NodeName != "" }
