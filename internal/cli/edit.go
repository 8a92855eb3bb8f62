package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shadegraph/pkg/document"
	"github.com/matzehuels/shadegraph/pkg/editor"
	"github.com/matzehuels/shadegraph/pkg/graph"
	"github.com/matzehuels/shadegraph/pkg/preview"
	"github.com/matzehuels/shadegraph/pkg/session"
)

// dropPoint is where keyboard-added nodes land on the canvas before the
// next auto-layout moves them into place.
var dropPoint = graph.Point{X: 600, Y: 300}

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var resume bool

	cmd := &cobra.Command{
		Use:   "edit [document]",
		Short: "Open a document in the interactive node-graph editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			store, err := session.NewCLIStore()
			if err != nil {
				c.Logger.Warn("workspace store unavailable", "err", err)
			}
			if path == "" && resume && store != nil {
				if w, err := store.Last(cmd.Context()); err == nil && w != nil {
					path = w.DocumentURI
					c.Logger.Info("resuming workspace", "document", path)
				}
			}
			if path == "" {
				return fmt.Errorf("no document given and nothing to resume")
			}

			reg, err := c.loadRegistry()
			if err != nil {
				return err
			}
			doc := c.loadDocument(path)

			logger := newLogger(os.Stderr, c.Logger.GetLevel())
			sess := editor.NewSession(doc, reg, preview.NewLogRenderer(logger), logger)
			sess.LayoutIfDirty()

			m := newEditorModel(sess, path, store)
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&resume, "resume", true, "resume the last workspace when no document is given")
	return cmd
}

// =============================================================================
// Editor Model
// =============================================================================

// editMode is the TUI's input mode.
type editMode int

const (
	modeNodes  editMode = iota // navigating nodes
	modePins                   // navigating one node's pins
	modeRename                 // typing a new name
	modeValue                  // typing a literal value
	modeAdd                    // picking a category to add
)

// pinRef remembers the pin a pending link drag started at; while one is
// set, pins of other types render dimmed.
type pinRef struct {
	id  graph.ID
	typ string
}

// editorModel is the bubbletea model wrapping an editor session. It is
// a thin shell: every key maps onto exactly one session operation, and
// the view re-renders from session state each frame.
type editorModel struct {
	sess  *editor.Session
	path  string
	store *session.CLIStore

	mode      editMode
	cursor    int
	pinCursor int
	linkFrom  *pinRef
	input     string
	addCursor int
	addList   []string
	dirty     bool
	height    int
}

func newEditorModel(sess *editor.Session, path string, store *session.CLIStore) *editorModel {
	return &editorModel{
		sess:    sess,
		path:    path,
		store:   store,
		addList: addMenu(sess),
		height:  30,
	}
}

// addMenu lists everything the add-node picker offers: the special
// categories first, then every registered definition category.
func addMenu(sess *editor.Session) []string {
	menu := []string{"input", "output", "nodegraph", "comment"}
	return append(menu, sess.Registry().Categories()...)
}

func (m *editorModel) current() *graph.Node {
	nodes := m.sess.Graph().Nodes()
	if m.cursor < 0 || m.cursor >= len(nodes) {
		return nil
	}
	return nodes[m.cursor]
}

// pinsOf lists a node's pins, inputs first.
func pinsOf(n *graph.Node) []*graph.Pin {
	pins := append([]*graph.Pin(nil), n.Inputs()...)
	return append(pins, n.Outputs()...)
}

func (m *editorModel) currentPin() *graph.Pin {
	n := m.current()
	if n == nil {
		return nil
	}
	pins := pinsOf(n)
	if m.pinCursor < 0 || m.pinCursor >= len(pins) {
		return nil
	}
	return pins[m.pinCursor]
}

func (m *editorModel) Init() tea.Cmd { return nil }

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeRename, modeValue:
			return m.updateTextEntry(msg)
		case modeAdd:
			return m.updateAdd(msg)
		case modePins:
			return m.updatePins(msg)
		default:
			return m.updateNodes(msg)
		}
	}
	return m, nil
}

func (m *editorModel) updateNodes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nodes := m.sess.Graph().Nodes()
	switch msg.String() {
	case "ctrl+c", "q":
		m.saveWorkspace()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(nodes)-1 {
			m.cursor++
		}
	case "enter":
		if n := m.current(); n != nil {
			if err := m.sess.Enter(n.ID()); err == nil {
				m.cursor = 0
				m.sess.LayoutIfDirty()
			}
		}
	case "u", "esc":
		m.sess.Leave()
		m.cursor = 0
	case "tab":
		if m.current() != nil {
			m.mode = modePins
			m.pinCursor = 0
		}
	case " ":
		if n := m.current(); n != nil {
			m.sess.AddToSelection(n.ID())
		}
	case "x", "delete":
		if n := m.current(); n != nil {
			if m.sess.DeleteNode(n.ID()) == nil && m.cursor > 0 {
				m.cursor--
			}
			m.dirty = true
		}
	case "y":
		if n := m.current(); n != nil && len(m.sess.Selection()) == 0 {
			m.sess.Select(n.ID())
		}
		m.sess.Copy()
	case "p":
		m.sess.Paste(false)
		m.dirty = true
	case "P":
		m.sess.Paste(true)
		m.dirty = true
	case "r":
		if n := m.current(); n != nil {
			m.mode = modeRename
			m.input = n.Name()
		}
	case "a":
		m.mode = modeAdd
		m.addCursor = 0
	case "l":
		m.sess.AutoLayout()
		m.dirty = true
	case "s":
		m.save()
	}
	return m, nil
}

func (m *editorModel) updatePins(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.current()
	if n == nil {
		m.mode = modeNodes
		return m, nil
	}
	pins := pinsOf(n)
	switch msg.String() {
	case "esc", "tab":
		m.mode = modeNodes
		m.linkFrom = nil
	case "up", "k":
		if m.pinCursor > 0 {
			m.pinCursor--
		}
	case "down", "j":
		if m.pinCursor < len(pins)-1 {
			m.pinCursor++
		}
	case "v":
		if p := m.currentPin(); p != nil && p.Dir() == graph.In {
			m.mode = modeValue
			m.input = ""
		}
	case "d":
		if p := m.currentPin(); p != nil {
			m.sess.Disconnect(p.ID())
			m.dirty = true
		}
	case "c", "enter":
		p := m.currentPin()
		if p == nil {
			break
		}
		if m.linkFrom == nil {
			m.linkFrom = &pinRef{id: p.ID(), typ: p.Type()}
			m.mode = modeNodes
			break
		}
		if m.sess.Connect(m.linkFrom.id, p.ID()) == nil {
			m.dirty = true
		}
		m.linkFrom = nil
		m.mode = modeNodes
	}
	return m, nil
}

func (m *editorModel) updateTextEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNodes
	case "enter":
		if n := m.current(); n != nil {
			if m.mode == modeRename {
				m.sess.Rename(n.ID(), m.input)
			} else if p := m.currentPin(); p != nil {
				m.sess.SetInputValue(p.ID(), m.input)
			}
			m.dirty = true
		}
		m.mode = modeNodes
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		if len(msg.String()) == 1 {
			m.input += msg.String()
		}
	}
	return m, nil
}

func (m *editorModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNodes
	case "up", "k":
		if m.addCursor > 0 {
			m.addCursor--
		}
	case "down", "j":
		if m.addCursor < len(m.addList)-1 {
			m.addCursor++
		}
	case "enter":
		if m.addCursor < len(m.addList) {
			m.sess.AddNode(m.addList[m.addCursor], "", dropPoint)
			m.dirty = true
		}
		m.mode = modeNodes
	}
	return m, nil
}

// =============================================================================
// View
// =============================================================================

func (m *editorModel) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(m.viewAddMenu())
	default:
		b.WriteString(m.viewNodes())
	}

	b.WriteString("\n")
	for _, notice := range m.sess.ActiveNotices() {
		b.WriteString(styleNotice.Render(iconWarning+" "+notice.Message) + "\n")
	}
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *editorModel) viewHeader() string {
	crumbs := append([]string{"document"}, m.sess.Breadcrumbs()...)
	title := StyleTitle.Render(m.path) + "  " + StyleDim.Render(strings.Join(crumbs, " › "))
	if m.sess.ReadOnly() {
		title += "  " + styleReadOnly.Render("[read-only]")
	}
	if m.dirty {
		title += "  " + StyleWarning.Render("*")
	}
	return title
}

func (m *editorModel) viewNodes() string {
	var b strings.Builder
	dragging := m.linkFrom != nil
	keep := ""
	if dragging {
		keep = m.linkFrom.typ
	}

	for i, n := range m.sess.Graph().Nodes() {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-24s %s", cursor, n.Name(), StyleDim.Render(n.Category()))
		if i == m.cursor {
			line = styleSelected.Render(line)
		}
		b.WriteString(line + "\n")

		if i != m.cursor {
			continue
		}
		for j, p := range pinsOf(n) {
			marker := "   "
			if m.mode == modePins && j == m.pinCursor {
				marker = " ▸ "
			}
			state := " "
			if p.Connected() {
				state = "●"
			}
			row := fmt.Sprintf("%s%s %-4s %-16s %s",
				marker, state, p.Dir().String()[:2], p.Name(),
				pinStyle(p.Type(), dragging, keep).Render(p.Type()))
			b.WriteString("  " + row + "\n")
		}
	}
	return b.String()
}

func (m *editorModel) viewAddMenu() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Add node") + "\n")
	for i, cat := range m.addList {
		cursor := "  "
		if i == m.addCursor {
			cursor = "▸ "
		}
		line := cursor + cat
		if i == m.addCursor {
			line = styleSelected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *editorModel) viewFooter() string {
	switch m.mode {
	case modeRename:
		return StyleHighlight.Render("rename: ") + m.input + "▏"
	case modeValue:
		return StyleHighlight.Render("value: ") + m.input + "▏"
	case modePins:
		return StyleDim.Render("↑/↓ pin  c connect  d disconnect  v value  esc back")
	case modeAdd:
		return StyleDim.Render("↑/↓ pick  ⏎ add  esc cancel")
	}
	help := "↑/↓ node  ⏎ enter  u up  tab pins  a add  x delete  y copy  p paste  r rename  l layout  s save  q quit"
	if m.linkFrom != nil {
		help = "link pending: tab to a pin, c to connect  ·  " + help
	}
	return StyleDim.Render(help)
}

// =============================================================================
// Persistence
// =============================================================================

func (m *editorModel) save() {
	m.sess.SavePositions()
	if err := document.Write(m.sess.Doc(), m.path); err != nil {
		return
	}
	m.dirty = false
}

func (m *editorModel) saveWorkspace() {
	if m.store == nil {
		return
	}
	w := session.New(m.path, session.DefaultTTL)
	w.Breadcrumbs = append(w.Breadcrumbs, m.sess.Breadcrumbs()...)
	m.store.Save(context.Background(), w)
}
