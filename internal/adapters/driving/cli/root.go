// Package cli provides the docgrep command line interface.
// It is a driving adapter: commands talk to the core only through the
// driving ports injected with SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// version is set at build time.
var version = "dev"

var (
	searchService   driving.SearchService
	documentService driving.DocumentService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	documentWatcher driven.DocumentWatcher
)

var verbose bool

// Services holds the ports the commands run against.
type Services struct {
	Search   driving.SearchService
	Document driving.DocumentService
	Settings driving.SettingsService
	History  driving.HistoryService

	// Watcher reports changes to open files (optional).
	Watcher driven.DocumentWatcher
}

// SetServices injects the services used by every command.
func SetServices(s Services) {
	searchService = s.Search
	documentService = s.Document
	settingsService = s.Settings
	historyService = s.History
	documentWatcher = s.Watcher
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "docgrep",
	Short: "Incremental regular expression search over open documents",
	Long: `docgrep opens files as in-memory documents and searches them with
regular expressions. Searches run in small time-boxed steps, stream their
matches as they are found, and can be stopped at any point.

A pattern containing \n matches across line boundaries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
