package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgrep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui/views/doccontent"
	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/services"
)

type testEnv struct {
	documents *services.DocumentService
	search    *services.SearchService
	ports     *Ports
}

func newTestEnv(t *testing.T, texts map[string]string) *testEnv {
	t.Helper()
	settings := services.NewSettingsService(memory.NewConfigStore())
	documents := services.NewDocumentService(memory.NewDocumentStore(), nil, settings)
	history := services.NewHistoryService(memory.NewHistoryStore(), settings)
	search := services.NewSearchService(documents, settings, history)

	for _, uri := range []string{"mem://a.txt", "mem://b.txt"} {
		text, ok := texts[uri]
		if !ok {
			continue
		}
		_, err := documents.OpenText(context.Background(), uri, "", text)
		require.NoError(t, err)
	}

	ports := NewPorts(search, documents)
	ports.Settings = settings
	ports.History = history
	return &testEnv{documents: documents, search: search, ports: ports}
}

func newTestApp(t *testing.T, env *testEnv) *App {
	t.Helper()
	app, err := NewApp(env.ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app
}

// pump runs cmd and feeds the messages the app reacts to back into it.
// Timer driven messages (spinner, cursor blink) are dropped.
func pump(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for n := 0; len(queue) > 0; n++ {
		require.Less(t, n, 1000, "message loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case messages.SearchStep, messages.SearchRequested, messages.ViewChanged,
			messages.DocumentsLoaded, messages.DocumentClosed, messages.DocumentSelected,
			messages.DocumentChanged, messages.WatchStopped, messages.ErrorOccurred,
			doccontent.Loaded:
			_, c := a.Update(msg)
			queue = append(queue, c)
		}
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, a *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := a.Update(key(k))
		pump(t, a, cmd)
	}
}

func TestNewApp_Validation(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := NewApp(&Ports{Document: env.documents})
	require.ErrorIs(t, err, ErrMissingSearchService)

	_, err = NewApp(&Ports{Search: env.search})
	require.ErrorIs(t, err, ErrMissingDocumentService)
}

func TestApp_NotReady(t *testing.T) {
	env := newTestEnv(t, nil)
	app, err := NewApp(env.ports)
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_InitialPattern(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"mem://a.txt": "foo bar\nbaz foo",
		"mem://b.txt": "nothing here",
	})
	app := newTestApp(t, env).WithInitialPattern("foo", false)
	require.Equal(t, messages.ViewSearch, app.CurrentView())

	pump(t, app, app.Init())

	sv := app.SearchView()
	assert.Len(t, sv.Matches(), 2)
	assert.Equal(t, status.StateDone, sv.Status())
	assert.False(t, sv.Searching())
	assert.Contains(t, app.View(), "a.txt:2:5")
}

func TestApp_TypedSearchAcrossLines(t *testing.T) {
	env := newTestEnv(t, map[string]string{"mem://a.txt": "abc\ndef"})
	app := newTestApp(t, env)

	press(t, app, "enter") // menu: Search
	require.Equal(t, messages.ViewSearch, app.CurrentView())

	press(t, app, "c", `\`, "n", "d", "enter")

	matches := app.SearchView().Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].StartLine)
	assert.Equal(t, 2, matches[0].StartColumn)
	assert.Equal(t, 1, matches[0].EndLine)
	assert.Equal(t, 1, matches[0].EndColumn)
}

func TestApp_StepsRunOutsideSearchView(t *testing.T) {
	env := newTestEnv(t, map[string]string{"mem://a.txt": "foo"})
	app := newTestApp(t, env)

	_, cmd := app.Update(messages.SearchRequested{Pattern: "foo"})
	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	pump(t, app, cmd)

	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Len(t, app.SearchView().Matches(), 1)
	assert.Equal(t, status.StateDone, app.SearchView().Status())
}

func TestApp_OpenMatchAndReturn(t *testing.T) {
	env := newTestEnv(t, map[string]string{"mem://a.txt": "one\ntwo foo\nthree"})
	app := newTestApp(t, env).WithInitialPattern("foo", false)
	pump(t, app, app.Init())

	press(t, app, "enter")

	require.Equal(t, messages.ViewDocContent, app.CurrentView())
	assert.Contains(t, app.View(), "two foo")

	press(t, app, "esc")
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_DocumentsViewCloseDocument(t *testing.T) {
	env := newTestEnv(t, map[string]string{"mem://a.txt": "a", "mem://b.txt": "b"})
	app := newTestApp(t, env)
	pump(t, app, app.Init())

	press(t, app, "down", "enter") // menu: Documents
	require.Equal(t, messages.ViewDocuments, app.CurrentView())
	assert.Contains(t, app.View(), "Open Documents (2)")

	press(t, app, "x")

	docs, err := env.documents.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "mem://b.txt", docs[0].URI)
	assert.Contains(t, app.View(), "Open Documents (1)")

	press(t, app, "enter")
	require.Equal(t, messages.ViewDocContent, app.CurrentView())
	press(t, app, "esc")
	assert.Equal(t, messages.ViewDocuments, app.CurrentView())

	press(t, app, "esc")
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Contains(t, app.View(), "1 open documents")
}

func TestApp_ClosingDocumentTerminatesSearch(t *testing.T) {
	env := newTestEnv(t, map[string]string{"mem://a.txt": "foo", "mem://b.txt": "foo"})
	app := newTestApp(t, env)

	_, cmd := app.Update(messages.SearchRequested{Pattern: "foo"})
	docs, err := env.documents.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, env.documents.Close(context.Background(), docs[0].ID))
	pump(t, app, cmd)

	sv := app.SearchView()
	assert.Equal(t, status.StateTerminated, sv.Status())
	assert.Equal(t, "a.txt was closed or modified", sv.StatusMessage())
	assert.Empty(t, sv.Matches())
}

func TestApp_AppliesWatcherChanges(t *testing.T) {
	env := newTestEnv(t, map[string]string{"mem://a.txt": "old"})
	changes := make(chan domain.DocumentChange, 2)
	changes <- domain.DocumentChange{Type: domain.ChangeUpdated, URI: "mem://a.txt", Text: "new text"}
	changes <- domain.DocumentChange{Type: domain.ChangeUpdated, URI: "mem://other.txt", Text: "ignored"}
	close(changes)
	env.ports.Changes = changes
	app := newTestApp(t, env)

	pump(t, app, app.Init())

	docs, err := env.documents.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "new text", docs[0].Text())
}

func TestApp_HelpView(t *testing.T) {
	env := newTestEnv(t, nil)
	app := newTestApp(t, env)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Help")

	press(t, app, "esc")
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_CtrlCQuits(t *testing.T) {
	env := newTestEnv(t, nil)
	app := newTestApp(t, env)

	_, cmd := app.Update(key("ctrl+c"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ErrorForwardedToSearchView(t *testing.T) {
	env := newTestEnv(t, nil)
	app := newTestApp(t, env)
	app.Update(messages.ViewChanged{View: messages.ViewSearch})

	app.Update(messages.ErrorOccurred{Err: domain.ErrNoDocuments})

	assert.ErrorIs(t, app.Err(), domain.ErrNoDocuments)
	assert.ErrorIs(t, app.SearchView().Err(), domain.ErrNoDocuments)
}
