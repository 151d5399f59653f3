package search

import (
	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
)

// lineMatcher matches a pattern against one line at a time.
// The resume point is a line number.
type lineMatcher struct {
	pattern *Pattern
}

func (m *lineMatcher) reset() {}

func (m *lineMatcher) scan(doc driven.LineAccessor, from int, b budget, emit func(domain.Match)) scanResult {
	uri, name := doc.Identity()
	n := doc.LineCount()

	for line := from; line < n; line++ {
		text := doc.Line(line)
		runes := []rune(text)

		for pos := 0; pos <= len(runes); {
			if b.halted() {
				return scanResult{state: scanHalted}
			}
			match, err := m.pattern.find(runes, pos)
			if err != nil {
				return scanResult{state: scanFailed, err: err}
			}
			if match == nil {
				break
			}
			if match.Length == 0 {
				pos = match.Index + 1
				continue
			}
			emit(domain.Match{
				URI:          uri,
				DocumentName: name,
				Preview:      text,
				Length:       match.Length,
				StartLine:    line,
				StartColumn:  match.Index,
				EndLine:      line,
				EndColumn:    match.Index + match.Length,
			})
			pos = match.Index + match.Length
		}

		if b.halted() {
			return scanResult{state: scanHalted}
		}
		if line+1 < n && b.expired() {
			return scanResult{state: scanPaused, next: line + 1}
		}
	}
	return scanResult{state: scanExhausted}
}
