package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		keyStr  string
		binding func(*KeyMap) bool
	}{
		{"quit q", "q", func(k *KeyMap) bool { return Matches("q", k.Quit) }},
		{"quit ctrl+c", "ctrl+c", func(k *KeyMap) bool { return Matches("ctrl+c", k.Quit) }},
		{"cancel esc", "esc", func(k *KeyMap) bool { return Matches("esc", k.Cancel) }},
		{"rerun r", "r", func(k *KeyMap) bool { return Matches("r", k.Rerun) }},
		{"new search slash", "/", func(k *KeyMap) bool { return Matches("/", k.NewSearch) }},
		{"close x", "x", func(k *KeyMap) bool { return Matches("x", k.Close) }},
		{"up k", "k", func(k *KeyMap) bool { return Matches("k", k.Up) }},
		{"down j", "j", func(k *KeyMap) bool { return Matches("j", k.Down) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.binding(km), "%s should be bound", tt.keyStr)
		})
	}
}

func TestMatches_NoMatch(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("z", km.Quit))
	assert.False(t, Matches("", km.Rerun))
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 3)
	assert.Len(t, km.SearchingHelp(), 3)
	assert.Len(t, km.ResultsHelp(), 4)
	assert.Len(t, km.FullHelp(), 3)
	assert.Equal(t, "rerun", km.Rerun.Help().Desc)
}
