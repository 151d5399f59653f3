package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/tui"
	"github.com/custodia-labs/docgrep/internal/logger"
)

var (
	tuiPattern    string
	tuiIgnoreCase bool
	tuiHidden     bool
	tuiNoWatch    bool
	tuiLogFile    string
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [PATH...]",
	Short: "Launch the interactive terminal UI",
	Long: `Opens the given files and directories and launches the interactive
terminal user interface. Matches stream into the result list while the
search runs. Open files are watched: a change on disk reloads the document
and stops any search covering it.

Controls:
  Enter    - Search / open match
  Esc      - Stop search / back
  Tab      - Toggle ignore case
  r        - Rerun last search
  x        - Close document (documents view)
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiPattern, "pattern", "p", "", "search for this pattern on start")
	tuiCmd.Flags().BoolVarP(&tuiIgnoreCase, "ignore-case", "i", false, "match case-insensitively")
	tuiCmd.Flags().BoolVar(&tuiHidden, "hidden", false, "include hidden files and directories")
	tuiCmd.Flags().BoolVar(&tuiNoWatch, "no-watch", false, "do not reload documents when files change")
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Log lines would corrupt the alternate screen.
	if tuiLogFile != "" {
		f, err := logger.OpenFile(tuiLogFile)
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		logger.SetOutput(io.Discard)
	}
	defer logger.SetOutput(os.Stderr)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ports := &tui.Ports{
		Search:   searchService,
		Document: documentService,
		Settings: settingsService,
		History:  historyService,
	}
	if err := ports.Validate(); err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if len(args) > 0 {
		if _, err := openInputs(cmd, args, tuiHidden); err != nil {
			return err
		}
		if !tuiNoWatch && documentWatcher != nil {
			changes, err := documentWatcher.Watch(ctx, args)
			if err != nil {
				logger.Warn("file watching disabled: %v", err)
			} else {
				ports.Changes = changes
				defer documentWatcher.Close()
			}
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx).WithInitialPattern(tuiPattern, tuiIgnoreCase)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
