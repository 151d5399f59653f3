package status

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Contains(t, bar.View(), "Ready")
}

func TestBar_StartSearching(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetMatchCount(5)
	bar.AddFailure()

	cmd := bar.StartSearching()

	assert.NotNil(t, cmd)
	assert.Equal(t, StateSearching, bar.State())
	assert.Equal(t, 0, bar.MatchCount())
	assert.Equal(t, 0, bar.Failures())
}

func TestBar_SearchingShowsCurrentDocument(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.StartSearching()
	bar.SetCurrent("notes.md")
	bar.SetMatchCount(3)

	view := bar.View()

	assert.Contains(t, view, "Searching notes.md...")
	assert.Contains(t, view, "3 matches")
	assert.Contains(t, view, "stop")
}

func TestBar_States(t *testing.T) {
	tests := []struct {
		state    State
		message  string
		expected string
	}{
		{StateDone, "", "Done"},
		{StateCancelled, "", "Stopped"},
		{StateTerminated, "a.txt changed", "Search aborted: a.txt changed"},
		{StateError, "bad pattern", "Error: bad pattern"},
		{StateReady, "", "Ready"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)

			assert.Contains(t, bar.View(), tt.expected)
		})
	}
}

func TestBar_FailuresShown(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetState(StateDone)
	bar.AddFailure()
	bar.AddFailure()

	assert.Contains(t, bar.View(), "2 skipped")
}

func TestBar_SpinnerOnlyTicksWhileSearching(t *testing.T) {
	bar := NewBar(nil, nil)

	_, cmd := bar.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)

	bar.StartSearching()
	_, cmd = bar.Update(bar.spinner.Tick())
	assert.NotNil(t, cmd)
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("x")
	bar.SetMatchCount(2)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.MatchCount())
}
