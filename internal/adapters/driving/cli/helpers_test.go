package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgrep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docgrep/internal/connectors/filesystem"
	"github.com/custodia-labs/docgrep/internal/core/services"
)

// testEnv holds the services wired into the commands for one test.
type testEnv struct {
	documents *services.DocumentService
	settings  *services.SettingsService
	history   *services.HistoryService
	search    *services.SearchService
}

// setupTestServices wires real services over in-memory stores and returns
// a cleanup that restores the previous globals and flag values.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	prev := Services{
		Search:   searchService,
		Document: documentService,
		Settings: settingsService,
		History:  historyService,
		Watcher:  documentWatcher,
	}

	settings := services.NewSettingsService(memory.NewConfigStore())
	documents := services.NewDocumentService(memory.NewDocumentStore(), filesystem.NewLoader(2), settings)
	history := services.NewHistoryService(memory.NewHistoryStore(), settings)
	search := services.NewSearchService(documents, settings, history)

	SetServices(Services{
		Search:   search,
		Document: documents,
		Settings: settings,
		History:  history,
	})

	t.Cleanup(func() {
		SetServices(prev)
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	return &testEnv{documents: documents, settings: settings, history: history, search: search}
}

func resetFlags() {
	searchJSON = false
	searchIgnoreCase = false
	searchHidden = false
	searchNoColor = false
	searchBudget = 0
	searchMaxResults = 0
	openHidden = false
	historyLimit = 20
	mcpHidden = false
	tuiPattern = ""
	tuiIgnoreCase = false
	tuiHidden = false
	tuiNoWatch = false
	tuiLogFile = ""
	verbose = false
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFiles creates files under a temporary directory and returns it.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}
