package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/messages"
)

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.Equal(t, 0, v.Selected())
	require.Len(t, v.Items(), 4)
	assert.Equal(t, "Search", v.Items()[0].Label)
	assert.True(t, v.Items()[3].Quit)
}

func TestView_NotReady(t *testing.T) {
	v := NewView(nil, nil)
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Navigation(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.Selected())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.Selected())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 3, v.Selected())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 2, v.Selected())
}

func TestView_EnterChangesView(t *testing.T) {
	v := NewView(nil, nil)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewDocuments}, cmd())
}

func TestView_QuitItem(t *testing.T) {
	v := NewView(nil, nil)
	for range 3 {
		v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_Render(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 24)
	v.SetDocumentCount(3)

	out := v.View()

	assert.Contains(t, out, "docgrep")
	assert.Contains(t, out, "3 open documents")
	assert.Contains(t, out, "Documents")
}
