// Package doccontent provides the document content view for the TUI.
package doccontent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
)

// ErrNoDocumentService indicates that no document service was provided.
var ErrNoDocumentService = errors.New("document service not available")

// Loaded carries a document fetched for display.
type Loaded struct {
	Document *domain.Document
	Err      error
}

// View shows the lines of one document with a line number gutter.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService

	document     *domain.Document
	target       int // highlighted line, -1 for none
	back         messages.ViewType
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new document content view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		documentService: documentService,
		target:          -1,
		back:            messages.ViewDocuments,
		width:           80,
		height:          24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Show loads the selected document and scrolls to the selected line.
// Esc returns to back.
func (v *View) Show(sel messages.DocumentSelected, back messages.ViewType) tea.Cmd {
	v.document = nil
	v.target = sel.Line
	v.back = back
	v.scrollOffset = 0
	v.err = nil
	v.loading = true

	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return Loaded{Err: ErrNoDocumentService}
		}
		if sel.DocumentID != "" {
			doc, err := svc.Get(context.Background(), sel.DocumentID)
			return Loaded{Document: doc, Err: err}
		}
		docs, err := svc.List(context.Background())
		if err != nil {
			return Loaded{Err: err}
		}
		for _, d := range docs {
			if d.URI == sel.URI {
				return Loaded{Document: d}
			}
		}
		return Loaded{Err: fmt.Errorf("%w: %s is no longer open", domain.ErrNotFound, sel.URI)}
	}
}

// Update handles messages for the document content view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case Loaded:
		v.loading = false
		v.err = msg.Err
		v.document = msg.Document
		v.centreOnTarget()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.scrollTo(v.scrollOffset - 1)
	case "down", "j":
		v.scrollTo(v.scrollOffset + 1)
	case "pgup", "ctrl+u":
		v.scrollTo(v.scrollOffset - v.visibleLines())
	case "pgdown", "ctrl+d":
		v.scrollTo(v.scrollOffset + v.visibleLines())
	case "home", "g":
		v.scrollTo(0)
	case "end", "G":
		v.scrollTo(v.maxScrollOffset())
	case "esc":
		back := v.back
		return v, func() tea.Msg {
			return messages.ViewChanged{View: back}
		}
	}
	return v, nil
}

func (v *View) scrollTo(offset int) {
	v.scrollOffset = max(0, min(offset, v.maxScrollOffset()))
}

// centreOnTarget places the target line a third of the way down the page.
func (v *View) centreOnTarget() {
	if v.target < 0 {
		v.scrollOffset = 0
		return
	}
	v.scrollTo(v.target - v.visibleLines()/3)
}

func (v *View) lineCount() int {
	if v.document == nil {
		return 0
	}
	return v.document.LineCount()
}

func (v *View) visibleLines() int {
	return max(v.height-6, 1)
}

func (v *View) maxScrollOffset() int {
	return max(v.lineCount()-v.visibleLines(), 0)
}

// View renders the document content view.
func (v *View) View() string {
	var b strings.Builder

	title := "Document"
	if v.document != nil {
		title = v.document.Name
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.document != nil {
		b.WriteString(v.styles.Location.Render(v.document.URI))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading content..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.document == nil:
		b.WriteString(v.styles.Muted.Render("(No document)"))
	default:
		b.WriteString(v.renderLines())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back"))
	return b.String()
}

// renderLines renders the visible window of lines with a gutter.
func (v *View) renderLines() string {
	total := v.lineCount()
	gutter := len(fmt.Sprint(total))
	textWidth := max(v.width-gutter-3, 10)
	end := min(v.scrollOffset+v.visibleLines(), total)

	var b strings.Builder
	for i := v.scrollOffset; i < end; i++ {
		line := []rune(v.document.Line(i))
		if len(line) > textWidth {
			line = line[:textWidth]
		}
		b.WriteString(v.styles.LineNumber.Render(fmt.Sprintf("%*d", gutter, i+1)))
		b.WriteString(" │ ")
		if i == v.target {
			b.WriteString(v.styles.Match.Render(string(line)))
		} else {
			b.WriteString(v.styles.Normal.Render(string(line)))
		}
		b.WriteString("\n")
	}
	if total > v.visibleLines() {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Line %d-%d of %d", v.scrollOffset+1, end, total)))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.scrollTo(v.scrollOffset)
}

// Document returns the displayed document.
func (v *View) Document() *domain.Document {
	return v.document
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Target returns the highlighted line, or -1.
func (v *View) Target() int {
	return v.target
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
