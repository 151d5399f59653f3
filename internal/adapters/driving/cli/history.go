package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches, newest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all search history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	entries, err := historyService.List(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("No searches recorded.")
		return nil
	}

	for i := range entries {
		e := &entries[i]
		flags := ""
		if e.IgnoreCase {
			flags += "i"
		}
		if e.Multiline {
			flags += "m"
		}
		if flags != "" {
			flags = " [" + flags + "]"
		}
		cmd.Printf("  %s  %-30q%s\n", e.StartedAt.Local().Format(time.DateTime), e.Pattern, flags)
		cmd.Printf("      %d matches in %d documents, %s in %s\n",
			e.MatchCount, e.DocumentCount, e.Status, e.Duration.Round(time.Millisecond))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	if err := historyService.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("Search history cleared.")
	return nil
}
