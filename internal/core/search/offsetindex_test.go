package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOffsetIndex(t *testing.T) {
	idx := BuildOffsetIndex(newDoc("a", "abc", "def", "ghi"), false)

	assert.Equal(t, "abc\ndef\nghi", string(idx.Buffer()))
	assert.Equal(t, 11, idx.Len())
	require.Equal(t, 3, idx.LineCount())
	assert.Equal(t, 0, idx.LineStart(0))
	assert.Equal(t, 4, idx.LineStart(1))
	assert.Equal(t, 8, idx.LineStart(2))
}

func TestBuildOffsetIndex_KeepTrailingNewline(t *testing.T) {
	idx := BuildOffsetIndex(newDoc("a", "abc", "def"), true)

	assert.Equal(t, "abc\ndef\n", string(idx.Buffer()))
}

func TestBuildOffsetIndex_CountsRunes(t *testing.T) {
	idx := BuildOffsetIndex(newDoc("a", "héllo", "wörld"), false)

	assert.Equal(t, 6, idx.LineStart(1))
	assert.Equal(t, 11, idx.Len())
}

func TestOffsetIndex_LineOf(t *testing.T) {
	idx := BuildOffsetIndex(newDoc("a", "abc", "def", "ghi"), false)

	tests := []struct {
		name   string
		offset int
		line   int
		ok     bool
	}{
		{"buffer start", 0, 0, true},
		{"separator belongs to preceding line", 3, 0, true},
		{"second line start", 4, 1, true},
		{"inside second line", 6, 1, true},
		{"last line start", 8, 2, true},
		{"buffer end", 11, 2, true},
		{"past end", 12, 0, false},
		{"negative", -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, ok := idx.LineOf(tt.offset)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.line, line)
			}
		})
	}
}

func TestOffsetIndex_EmptyDocument(t *testing.T) {
	idx := BuildOffsetIndex(emptyAccessor{}, false)

	assert.Equal(t, 0, idx.Len())
	_, ok := idx.LineOf(0)
	assert.False(t, ok)
}

type emptyAccessor struct{}

func (emptyAccessor) LineCount() int { return 0 }

func (emptyAccessor) Line(int) string { panic("no lines") }

func (emptyAccessor) Identity() (uri, name string) { return "empty", "empty" }
