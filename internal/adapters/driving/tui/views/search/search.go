// Package search provides the pattern search view for the TUI.
// Matches stream into the list while the search runs; every search step is
// delivered as a message so typing and navigation stay responsive.
package search

import (
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// View represents the search view with input, match list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PatternInput
	list      *list.MatchList
	statusbar *status.Bar

	searchService driving.SearchService
	steps         *stepQueue
	handle        driving.SearchHandle

	// gen identifies the current search; sinks of older searches are ignored.
	gen int

	lastPattern    string
	lastIgnoreCase bool

	// abortReason is set from document closing callbacks on other goroutines.
	abortReason atomic.Value

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a pattern, false = navigating matches
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewPatternInput(s),
		list:          list.NewMatchList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		steps:         &stepQueue{},
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchRequested:
		v.input.SetValue(msg.Pattern)
		if msg.Options.IgnoreCase != v.input.IgnoreCase() {
			v.input.ToggleIgnoreCase()
		}
		return v, v.startSearch(msg.Pattern, msg.Options.IgnoreCase)

	case messages.SearchStep:
		msg.Run()
		v.refreshStatus()
		return v, v.steps.Cmd()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	if cmd != nil {
		return v, cmd
	}
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc stops a running search before it navigates anywhere.
	if msg.Type == tea.KeyEsc {
		if v.Searching() {
			logger.Debug("tui: cancelling search %s", v.handle.ID())
			v.handle.Cancel()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		switch {
		case msg.Type == tea.KeyEnter:
			pattern := v.input.Value()
			if pattern == "" {
				return v, nil
			}
			return v, v.startSearch(pattern, v.input.IgnoreCase())
		case keymap.Matches(msg.String(), v.keymap.IgnoreCase):
			v.input.ToggleIgnoreCase()
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.focusInput = true
		return v, v.input.Focus()
	case keymap.Matches(msg.String(), v.keymap.Rerun):
		if v.lastPattern != "" {
			return v, v.startSearch(v.lastPattern, v.lastIgnoreCase)
		}
	case keymap.Matches(msg.String(), v.keymap.Open):
		if m := v.list.SelectedMatch(); m != nil {
			selected := messages.DocumentSelected{URI: m.URI, Line: m.StartLine}
			return v, func() tea.Msg { return selected }
		}
	}
	return v, nil
}

// startSearch aborts any running search and starts a new one.
func (v *View) startSearch(pattern string, ignoreCase bool) tea.Cmd {
	if v.searchService == nil {
		v.err = ErrNoSearchService
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.err.Error())
		return nil
	}
	if v.handle != nil && v.handle.Searching() {
		v.handle.Terminate()
	}

	v.gen++
	v.err = nil
	v.abortReason.Store("")
	v.lastPattern = pattern
	v.lastIgnoreCase = ignoreCase
	v.list.SetMatches(nil)
	v.focusInput = false
	v.input.Blur()

	handle, err := v.searchService.Start(pattern, domain.SearchOptions{IgnoreCase: ignoreCase}, &viewSink{view: v, gen: v.gen}, v.steps)
	if err != nil {
		v.handle = nil
		v.err = err
		v.focusInput = true
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return v.input.Focus()
	}

	v.handle = handle
	tick := v.statusbar.StartSearching()
	return tea.Batch(tick, v.steps.Cmd())
}

// refreshStatus mirrors the handle's status onto the status bar.
func (v *View) refreshStatus() {
	if v.handle == nil || v.statusbar.State() != status.StateSearching {
		return
	}
	switch v.handle.Status() {
	case domain.SearchDone:
		v.statusbar.SetState(status.StateDone)
	case domain.SearchCancelled:
		v.statusbar.SetState(status.StateCancelled)
	case domain.SearchTerminated:
		v.statusbar.SetState(status.StateTerminated)
		reason, _ := v.abortReason.Load().(string)
		v.statusbar.SetMessage(reason)
	case domain.SearchIdle, domain.SearchRunning:
	}
}

// AbortReason records why the running search may be terminated.
// It is shown only if the search ends as terminated; it is safe to call
// from any goroutine.
func (v *View) AbortReason(reason string) {
	v.abortReason.Store(reason)
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("docgrep"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9) // Header, input, status
	v.statusbar.SetWidth(width)
}

// Searching reports whether a search is running.
func (v *View) Searching() bool {
	return v.handle != nil && v.handle.Searching()
}

// Matches returns the matches found so far.
func (v *View) Matches() []domain.Match {
	return v.list.Matches()
}

// Pattern returns the current input value.
func (v *View) Pattern() string {
	return v.input.Value()
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to input mode, keeping any running search.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.err = nil
}

// viewSink streams one search's events into the view.
type viewSink struct {
	view *View
	gen  int
}

func (s *viewSink) current() bool {
	return s.gen == s.view.gen
}

func (s *viewSink) OnMatch(m domain.Match) {
	if !s.current() {
		return
	}
	s.view.list.Append(m)
	s.view.statusbar.SetMatchCount(s.view.list.Count())
}

func (s *viewSink) OnProgress(_, name string) {
	if s.current() {
		s.view.statusbar.SetCurrent(name)
	}
}

func (s *viewSink) OnDone() {}

func (s *viewSink) OnError(err domain.DocumentError) {
	if !s.current() {
		return
	}
	logger.Warn("tui: skipped %s: %v", err.URI, err.Err)
	s.view.statusbar.AddFailure()
}

// String describes the view state for debugging.
func (v *View) String() string {
	return fmt.Sprintf("search view: pattern=%q matches=%d state=%s", v.lastPattern, v.list.Count(), v.statusbar.State())
}
