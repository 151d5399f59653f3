// Command docgrep searches open documents with incremental regular expression searches.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/docgrep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docgrep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docgrep/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docgrep/internal/adapters/driving/cli"
	"github.com/custodia-labs/docgrep/internal/connectors/filesystem"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
	"github.com/custodia-labs/docgrep/internal/core/services"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var configStore driven.ConfigStore
	fileConfig, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileConfig
	}

	historyStore := driven.HistoryStore(memory.NewHistoryStore())
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("search history will not be saved: %v", err)
	} else {
		defer store.Close()
		historyStore = store.HistoryStore()
	}

	settingsService := services.NewSettingsService(configStore)
	documentService := services.NewDocumentService(
		memory.NewDocumentStore(),
		filesystem.NewLoader(0),
		settingsService,
	)
	historyService := services.NewHistoryService(historyStore, settingsService)
	searchService := services.NewSearchService(documentService, settingsService, historyService)

	includeHidden := false
	if settings, err := settingsService.Get(); err == nil {
		includeHidden = settings.Files.IncludeHidden
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:   searchService,
		Document: documentService,
		Settings: settingsService,
		History:  historyService,
		Watcher:  filesystem.NewWatcher(includeHidden),
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "docgrep: %v\n", err)
		return 1
	}
	return 0
}
