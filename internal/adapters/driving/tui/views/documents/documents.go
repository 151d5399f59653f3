// Package documents provides the open documents view for the TUI.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
)

// ErrNoDocumentService indicates that no document service was provided.
var ErrNoDocumentService = errors.New("document service not available")

// View lists the open documents.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	documentService driving.DocumentService

	documents    []*domain.Document
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	scrollOffset int
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:          s,
		keymap:          km,
		documentService: documentService,
		width:           80,
		height:          24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command that lists the open documents.
func (v *View) Load() tea.Cmd {
	v.loading = true
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentsLoaded{Err: ErrNoDocumentService}
		}
		docs, err := svc.List(context.Background())
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

// closeDocument returns a command that closes the document.
func (v *View) closeDocument(id string) tea.Cmd {
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentClosed{DocumentID: id, Err: ErrNoDocumentService}
		}
		return messages.DocumentClosed{DocumentID: id, Err: svc.Close(context.Background(), id)}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.documents = msg.Documents
			if v.selected >= len(v.documents) {
				v.selected = max(len(v.documents)-1, 0)
			}
			v.adjustScroll()
		}
		return v, nil

	case messages.DocumentClosed:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.Load()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(msg.String(), v.keymap.Down):
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(msg.String(), v.keymap.Open):
		if doc := v.SelectedDocument(); doc != nil {
			selected := messages.DocumentSelected{DocumentID: doc.ID, URI: doc.URI}
			return v, func() tea.Msg { return selected }
		}
	case keymap.Matches(msg.String(), v.keymap.Close):
		if doc := v.SelectedDocument(); doc != nil {
			return v, v.closeDocument(doc.ID)
		}
	case keymap.Matches(msg.String(), v.keymap.Rerun):
		return v, v.Load()
	case keymap.Matches(msg.String(), v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleItemCount() int {
	return max(v.height-8, 1)
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Open Documents (%d)", len(v.documents))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents are open."))
	default:
		visible := v.visibleItemCount()
		end := min(v.scrollOffset+visible, len(v.documents))
		for i := v.scrollOffset; i < end; i++ {
			b.WriteString(v.renderDocument(i, v.documents[i]))
			b.WriteString("\n")
		}
		if len(v.documents) > visible {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]", v.scrollOffset+1, end, len(v.documents))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] view  [x] close  [r] reload  [esc] back"))
	return b.String()
}

// renderDocument renders a single document line.
func (v *View) renderDocument(index int, doc *domain.Document) string {
	name := truncate(doc.Name, max(v.width/3, 10))
	lines := fmt.Sprintf("%d lines", doc.LineCount())
	uri := doc.URI
	if maxURI := max(v.width/2-4, 10); len(uri) > maxURI {
		uri = "..." + uri[len(uri)-maxURI+3:]
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("> %-*s %10s  %s", max(v.width/3, 10), name, lines, uri))
	}
	return "  " + v.styles.Normal.Render(fmt.Sprintf("%-*s %10s  ", max(v.width/3, 10), name, lines)) +
		v.styles.Muted.Render(uri)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the listed documents.
func (v *View) Documents() []*domain.Document {
	return v.documents
}

// SelectedIndex returns the selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the selected document, or nil.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < len(v.documents) {
		return v.documents[v.selected]
	}
	return nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
