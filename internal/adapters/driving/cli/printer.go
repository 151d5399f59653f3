package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// matchPrinter writes matches as path:line:column: preview lines.
type matchPrinter struct {
	w     io.Writer
	color bool
	loc   lipgloss.Style
	hit   lipgloss.Style
}

// newMatchPrinter creates a printer. Color is used only when allowed and w
// is a terminal.
func newMatchPrinter(w io.Writer, allowColor bool) *matchPrinter {
	p := &matchPrinter{w: w, color: allowColor && isTerminal(w)}
	if p.color {
		r := lipgloss.NewRenderer(w)
		p.loc = r.NewStyle().Foreground(lipgloss.Color("#89b4fa"))
		p.hit = r.NewStyle().Bold(true).Foreground(lipgloss.Color("#f38ba8"))
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Print writes one match.
func (p *matchPrinter) Print(m domain.Match) {
	loc := fmt.Sprintf("%s:%d:%d:", displayPath(m.URI), m.StartLine+1, m.StartColumn+1)
	before, match, after := splitMatch(m)
	if p.color {
		loc = p.loc.Render(loc)
		match = p.hit.Render(match)
	}
	fmt.Fprintf(p.w, "%s %s%s%s\n", loc, before, match, after)
}

// splitMatch cuts the preview around the match. Line breaks inside a
// multi-line match are shown as ⏎.
func splitMatch(m domain.Match) (before, match, after string) {
	runes := []rune(m.Preview)
	start := min(max(m.StartColumn, 0), len(runes))
	end := min(start+max(m.Length, 0), len(runes))
	flat := func(s []rune) string {
		return strings.ReplaceAll(string(s), "\n", "⏎")
	}
	return flat(runes[:start]), flat(runes[start:end]), flat(runes[end:])
}
