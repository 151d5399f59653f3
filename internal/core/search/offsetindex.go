package search

import (
	"sort"

	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
)

// OffsetIndex holds a document's lines joined with "\n" and the offset at
// which each line starts. Offsets count runes.
type OffsetIndex struct {
	buffer     []rune
	lineStarts []int
}

// BuildOffsetIndex synthesizes the buffer for doc. The separator after the
// last line is kept only when keepTrailingNewline is set.
func BuildOffsetIndex(doc driven.LineAccessor, keepTrailingNewline bool) *OffsetIndex {
	n := doc.LineCount()
	idx := &OffsetIndex{lineStarts: make([]int, 0, n)}
	for i := 0; i < n; i++ {
		idx.lineStarts = append(idx.lineStarts, len(idx.buffer))
		idx.buffer = append(idx.buffer, []rune(doc.Line(i))...)
		idx.buffer = append(idx.buffer, '\n')
	}
	if n > 0 && !keepTrailingNewline {
		idx.buffer = idx.buffer[:len(idx.buffer)-1]
	}
	return idx
}

// Buffer returns the synthesized buffer.
func (x *OffsetIndex) Buffer() []rune {
	return x.buffer
}

// Len returns the buffer length in runes.
func (x *OffsetIndex) Len() int {
	return len(x.buffer)
}

// LineCount returns the number of indexed lines.
func (x *OffsetIndex) LineCount() int {
	return len(x.lineStarts)
}

// LineStart returns the offset of the first rune of line i.
func (x *OffsetIndex) LineStart(i int) int {
	return x.lineStarts[i]
}

// LineOf returns the greatest line whose start is <= offset.
// It reports false for offsets outside the buffer.
func (x *OffsetIndex) LineOf(offset int) (int, bool) {
	if offset < 0 || offset > len(x.buffer) || len(x.lineStarts) == 0 {
		return 0, false
	}
	i := sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	})
	return i - 1, true
}
