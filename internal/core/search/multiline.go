package search

import (
	"fmt"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
)

// bufferMatcher matches a pattern against the whole document joined with
// newlines. The resume point is a rune offset into that buffer.
type bufferMatcher struct {
	pattern *Pattern
	index   *OffsetIndex
}

func (m *bufferMatcher) reset() {
	m.index = nil
}

func (m *bufferMatcher) scan(doc driven.LineAccessor, from int, b budget, emit func(domain.Match)) scanResult {
	if from == 0 || m.index == nil {
		m.index = BuildOffsetIndex(doc, m.pattern.EndAnchored())
	}
	idx := m.index
	buf := idx.Buffer()
	uri, name := doc.Identity()

	for pos := from; pos <= len(buf); {
		if b.halted() {
			return scanResult{state: scanHalted}
		}
		match, err := m.pattern.find(buf, pos)
		if err != nil {
			return scanResult{state: scanFailed, err: err}
		}
		if match == nil {
			break
		}

		if match.Length == 0 {
			pos = match.Index + 1
		} else {
			start := match.Index
			line, ok := idx.LineOf(start)
			if !ok {
				return scanResult{state: scanFailed, err: fmt.Errorf("%w: offset %d", domain.ErrOffsetLookup, start)}
			}
			lineStart := idx.LineStart(line)
			text := match.Runes()

			newlines, lastNewline := 0, -1
			for i, r := range text {
				if r == '\n' {
					newlines++
					lastNewline = i
				}
			}
			startColumn := start - lineStart
			endColumn := startColumn + match.Length
			if lastNewline >= 0 {
				endColumn = match.Length - lastNewline - 1
			}

			emit(domain.Match{
				URI:          uri,
				DocumentName: name,
				Preview:      string(buf[lineStart:start]) + string(text),
				Length:       match.Length,
				StartLine:    line,
				StartColumn:  startColumn,
				EndLine:      line + newlines,
				EndColumn:    endColumn,
			})
			pos = start + match.Length
		}

		if pos < len(buf) && b.expired() {
			return scanResult{state: scanPaused, next: pos}
		}
	}
	return scanResult{state: scanExhausted}
}
