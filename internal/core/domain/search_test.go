package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSearchStatus_String tests status names
func TestSearchStatus_String(t *testing.T) {
	tests := []struct {
		status   SearchStatus
		expected string
	}{
		{SearchIdle, "idle"},
		{SearchRunning, "running"},
		{SearchCancelled, "cancelled"},
		{SearchTerminated, "terminated"},
		{SearchDone, "done"},
		{SearchStatus(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

// TestSearchStatus_IsTerminal tests which statuses stop scheduling
func TestSearchStatus_IsTerminal(t *testing.T) {
	assert.False(t, SearchIdle.IsTerminal())
	assert.False(t, SearchRunning.IsTerminal())
	assert.True(t, SearchCancelled.IsTerminal())
	assert.True(t, SearchTerminated.IsTerminal())
	assert.True(t, SearchDone.IsTerminal())
}

// TestInactiveCursor tests the inactive cursor value
func TestInactiveCursor(t *testing.T) {
	assert.Equal(t, -1, InactiveCursor.DocumentIndex)
	assert.Equal(t, 0, InactiveCursor.ResumePoint)
}
