package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/views/doccontent"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	menuView       *menu.View
	searchView     *search.View
	documentsView  *documents.View
	docContentView *doccontent.View

	// initial is a search to run as soon as the program starts.
	initial *messages.SearchRequested

	currentView messages.ViewType
	err         error
	width       int
	height      int
	ready       bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		help:           help.New(),
		menuView:       menu.NewView(s, km),
		searchView:     search.NewView(s, km, ports.Search),
		documentsView:  documents.NewView(s, km, ports.Document),
		docContentView: doccontent.NewView(s, ports.Document),
		currentView:    messages.ViewMenu,
	}

	// A closed or changed document terminates any search that covers it.
	ports.Document.OnClosing(func(doc *domain.Document) {
		a.searchView.AbortReason(doc.Name + " was closed or modified")
	})
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithInitialPattern starts in the search view running pattern.
func (a *App) WithInitialPattern(pattern string, ignoreCase bool) *App {
	if pattern == "" {
		return a
	}
	a.initial = &messages.SearchRequested{
		Pattern: pattern,
		Options: domain.SearchOptions{IgnoreCase: ignoreCase},
	}
	a.currentView = messages.ViewSearch
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("docgrep"),
		a.documentsView.Load(),
		a.waitForChange(),
	}
	if a.initial != nil {
		initial := *a.initial
		cmds = append(cmds, func() tea.Msg { return initial })
	}
	return tea.Batch(cmds...)
}

// waitForChange returns a command that blocks for the next file change.
func (a *App) waitForChange() tea.Cmd {
	ch := a.ports.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return messages.WatchStopped{}
		}
		return messages.DocumentChanged{Change: change}
	}
}

// applyChange returns a command that applies a file change to the open documents.
func (a *App) applyChange(change domain.DocumentChange) tea.Cmd {
	docs := a.ports.Document
	ctx := a.ctx
	return func() tea.Msg {
		if err := docs.ApplyChange(ctx, change); err != nil {
			logger.Warn("tui: applying %s change to %s: %v", change.Type, change.URI, err)
			return messages.ErrorOccurred{Err: err}
		}
		docList, err := docs.List(ctx)
		return messages.DocumentsLoaded{Documents: docList, Err: err}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateCurrent(msg)

	case messages.SearchStep:
		// Steps keep running whichever view is showing.
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.SearchRequested:
		a.currentView = messages.ViewSearch
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewMenu, messages.ViewDocuments:
			return a, a.documentsView.Load()
		case messages.ViewDocContent, messages.ViewHelp:
		}
		return a, nil

	case messages.DocumentsLoaded:
		if msg.Err == nil {
			a.menuView.SetDocumentCount(len(msg.Documents))
		}
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentClosed:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentSelected:
		back := messages.ViewDocuments
		if a.currentView == messages.ViewSearch {
			back = messages.ViewSearch
		}
		a.currentView = messages.ViewDocContent
		return a, a.docContentView.Show(msg, back)

	case doccontent.Loaded:
		a.docContentView, cmd = a.docContentView.Update(msg)
		return a, cmd

	case messages.DocumentChanged:
		logger.Debug("tui: %s %s", msg.Change.Type, msg.Change.URI)
		return a, tea.Batch(a.applyChange(msg.Change), a.waitForChange())

	case messages.WatchStopped:
		logger.Debug("tui: file watcher stopped")
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewDocContent:
			a.docContentView, cmd = a.docContentView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// The spinner and cursor blink belong to the search view.
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// updateCurrent forwards a key press to the active view.
func (a *App) updateCurrent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocContent:
		a.docContentView, cmd = a.docContentView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || keymap.Matches(msg.String(), a.keymap.Quit) {
			a.currentView = messages.ViewMenu
		}
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewDocContent:
		return a.docContentView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
		return a.menuView.View()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the keybindings.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Help.Render("Patterns are regular expressions. A \\n in the pattern matches across lines.") + "\n\n" +
		a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.docContentView.SetDimensions(width, height)
}
