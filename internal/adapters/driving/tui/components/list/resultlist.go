// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// MatchList displays streamed search matches in a navigable list.
type MatchList struct {
	matches  []domain.Match
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewMatchList creates an empty match list.
func NewMatchList(s *styles.Styles) *MatchList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &MatchList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (r *MatchList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *MatchList) Update(msg tea.Msg) (*MatchList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of matches.
func (r *MatchList) View() string {
	if len(r.matches) == 0 {
		return r.styles.Muted.Render("No matches")
	}

	lines := make([]string, 0, r.height)
	header := r.styles.Subtitle.Render(fmt.Sprintf("Matches (%d)", len(r.matches)))
	lines = append(lines, header, "")

	visible := r.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.matches) {
		end = len(r.matches)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderMatch(i, &r.matches[i]))
	}
	return strings.Join(lines, "\n")
}

// renderMatch formats one match as "name:line:col  preview".
func (r *MatchList) renderMatch(index int, m *domain.Match) string {
	location := fmt.Sprintf("%s:%d:%d", m.DocumentName, m.StartLine+1, m.StartColumn+1)

	indicator := "  "
	if index == r.selected {
		indicator = "> "
		location = r.styles.Selected.Render(location)
	} else {
		location = r.styles.Location.Render(location)
	}

	budget := r.width - len(m.DocumentName) - 16
	if budget < 20 {
		budget = 20
	}
	before, match, after := SplitPreview(*m, budget)
	preview := r.styles.Normal.Render(before) + r.styles.Match.Render(match) + r.styles.Normal.Render(after)

	return indicator + location + "  " + preview
}

// SplitPreview cuts a match preview into the text before, inside and after
// the match, on one line and at most width runes long.
func SplitPreview(m domain.Match, width int) (before, match, after string) {
	runes := []rune(m.Preview)
	start := clamp(m.StartColumn, 0, len(runes))
	end := clamp(start+m.Length, start, len(runes))

	// Keep some left context when the match starts far into the line.
	if start > width/2 {
		offset := start - width/4
		runes = runes[offset:]
		start -= offset
		end -= offset
	}
	if len(runes) > width {
		runes = runes[:width]
		start = clamp(start, 0, width)
		end = clamp(end, start, width)
	}

	oneLine := func(rs []rune) string {
		return strings.ReplaceAll(string(rs), "\n", "⏎")
	}
	return oneLine(runes[:start]), oneLine(runes[start:end]), oneLine(runes[end:])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Append adds a match to the end of the list.
func (r *MatchList) Append(m domain.Match) {
	r.matches = append(r.matches, m)
}

// SetMatches replaces the list contents.
func (r *MatchList) SetMatches(matches []domain.Match) {
	r.matches = matches
	r.selected = 0
}

// Matches returns the current matches.
func (r *MatchList) Matches() []domain.Match {
	return r.matches
}

// Selected returns the index of the selected match.
func (r *MatchList) Selected() int {
	return r.selected
}

// SelectedMatch returns the selected match, or nil if none.
func (r *MatchList) SelectedMatch() *domain.Match {
	if r.selected < 0 || r.selected >= len(r.matches) {
		return nil
	}
	return &r.matches[r.selected]
}

// MoveUp moves selection up.
func (r *MatchList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *MatchList) MoveDown() {
	if r.selected < len(r.matches)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *MatchList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of matches.
func (r *MatchList) Count() int {
	return len(r.matches)
}
