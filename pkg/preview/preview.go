// Package preview defines the narrow interface between the editor core
// and the render/preview collaborator (viewport + shader compilation).
//
// The core never blocks on compilation: editing marks materials dirty
// through SetMaterialCompilation, and the collaborator polls the flag
// across subsequent frames while the editor keeps processing input.
package preview

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/shadegraph/pkg/document"
)

// Renderer is implemented by the preview viewport collaborator.
type Renderer interface {
	// SetDocument hands the collaborator the document to render.
	SetDocument(doc *document.Document)

	// UpdateMaterials recompiles and redisplays materials. element names
	// a specific renderable element; "" means every material in the
	// document.
	UpdateMaterials(element string)

	// ModifyUniform pushes a single literal value change to the running
	// shader without a recompile. path is the document path of the
	// input ("nodename.inputname").
	ModifyUniform(path, value string)

	// SetMaterialCompilation marks materials dirty (true) or clean.
	// Polled by the viewport; never blocks.
	SetMaterialCompilation(dirty bool)
}

// LogRenderer is a Renderer that records calls to a logger. It stands
// in for the viewport in the CLI and in tests, and doubles as a trace
// of what a real collaborator would be asked to do.
type LogRenderer struct {
	logger  *log.Logger
	dirty   bool
	doc     *document.Document
	updates []string
}

// NewLogRenderer creates a LogRenderer writing to logger.
func NewLogRenderer(logger *log.Logger) *LogRenderer {
	return &LogRenderer{logger: logger}
}

// Discard returns a Renderer that records state but logs nothing.
func Discard() *LogRenderer {
	logger := log.New(nil)
	logger.SetLevel(log.FatalLevel + 1)
	return &LogRenderer{logger: logger}
}

// SetDocument implements Renderer.
func (r *LogRenderer) SetDocument(doc *document.Document) {
	r.doc = doc
	r.logger.Debug("preview: document set", "name", doc.DocName)
}

// UpdateMaterials implements Renderer.
func (r *LogRenderer) UpdateMaterials(element string) {
	r.updates = append(r.updates, element)
	if element == "" {
		r.logger.Debug("preview: update all materials")
		return
	}
	r.logger.Debug("preview: update material", "element", element)
}

// ModifyUniform implements Renderer.
func (r *LogRenderer) ModifyUniform(path, value string) {
	r.logger.Debug("preview: modify uniform", "path", path, "value", value)
}

// SetMaterialCompilation implements Renderer.
func (r *LogRenderer) SetMaterialCompilation(dirty bool) {
	r.dirty = dirty
	r.logger.Debug("preview: compilation flag", "dirty", dirty)
}

// Compiling reports the current compile flag, the way the viewport
// would poll it.
func (r *LogRenderer) Compiling() bool { return r.dirty }

// Updates returns the UpdateMaterials calls seen so far (tests).
func (r *LogRenderer) Updates() []string { return r.updates }

var _ Renderer = (*LogRenderer)(nil)
