package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
	"github.com/custodia-labs/docgrep/internal/core/services"
	"github.com/custodia-labs/docgrep/internal/logger"
)

var (
	searchJSON       bool
	searchIgnoreCase bool
	searchHidden     bool
	searchNoColor    bool
	searchBudget     time.Duration
	searchMaxResults int
)

var searchCmd = &cobra.Command{
	Use:   "search PATTERN [PATH...]",
	Short: "Search files for a regular expression",
	Long: `Opens the given files and directories as documents and searches them for
PATTERN. Matches are printed as they are found, as path:line:column.

A pattern containing \n is matched across line boundaries; otherwise each
line is matched on its own. With no PATH, or PATH "-", standard input is
searched. Interrupting the command stops the search and prints what was
found so far.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output a JSON report when the search finishes")
	searchCmd.Flags().BoolVarP(&searchIgnoreCase, "ignore-case", "i", false, "match case-insensitively")
	searchCmd.Flags().BoolVar(&searchHidden, "hidden", false, "include hidden files and directories")
	searchCmd.Flags().BoolVar(&searchNoColor, "no-color", false, "disable colored output")
	searchCmd.Flags().DurationVar(&searchBudget, "budget", 0, "time slice per search step (default from settings)")
	searchCmd.Flags().IntVarP(&searchMaxResults, "max-results", "m", 0, "stop after this many matches (0 = unlimited)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil || documentService == nil {
		return errors.New("search service not configured")
	}
	pattern := args[0]

	docs, err := openInputs(cmd, args[1:], searchHidden)
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		IgnoreCase: searchIgnoreCase,
		Budget:     searchBudget,
		MaxResults: searchMaxResults,
	}
	for _, doc := range docs {
		opts.DocumentIDs = append(opts.DocumentIDs, doc.ID)
	}
	if len(docs) == 0 {
		return domain.ErrNoDocuments
	}

	if searchJSON {
		return outputSearchJSON(cmd, pattern, opts)
	}
	return streamSearch(cmd, pattern, opts)
}

// streamSearch prints matches as the search steps produce them.
func streamSearch(cmd *cobra.Command, pattern string, opts domain.SearchOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sink := &printSink{
		printer: newMatchPrinter(cmd.OutOrStdout(), !searchNoColor),
		cmd:     cmd,
		max:     opts.MaxResults,
	}
	sched := services.NewScheduler()
	handle, err := searchService.Start(pattern, opts, sink, sched)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	sink.handle = handle

	start := time.Now()
	runErr := sched.Run(ctx)
	if runErr != nil {
		// Interrupted: abort the scan and let the final step run.
		handle.Terminate()
		_ = sched.Run(context.Background())
	}

	summary := fmt.Sprintf("%d matches in %d documents (%s)",
		sink.count, len(opts.DocumentIDs), time.Since(start).Round(time.Millisecond))
	switch {
	case sink.truncated:
		summary += fmt.Sprintf(", stopped after %d matches", opts.MaxResults)
	case handle.Status() == domain.SearchTerminated:
		summary += ", interrupted"
	}
	if sink.failures > 0 {
		summary += fmt.Sprintf(", %d documents skipped", sink.failures)
	}
	cmd.PrintErrln(summary)
	return runErr
}

// printSink writes matches to the command output.
type printSink struct {
	printer   *matchPrinter
	cmd       *cobra.Command
	handle    driving.SearchHandle
	max       int
	count     int
	failures  int
	truncated bool
}

func (s *printSink) OnMatch(m domain.Match) {
	if s.truncated {
		return
	}
	s.count++
	s.printer.Print(m)
	if s.max > 0 && s.count >= s.max {
		s.truncated = true
		s.handle.Terminate()
	}
}

func (s *printSink) OnProgress(uri, _ string) {
	logger.Debug("searching %s", uri)
}

func (s *printSink) OnDone() {}

func (s *printSink) OnError(err domain.DocumentError) {
	s.failures++
	s.cmd.PrintErrf("docgrep: %s: %v\n", displayPath(err.URI), err.Err)
}

// jsonMatch is the JSON form of a match. Lines and columns are one-based.
type jsonMatch struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
	Length    int    `json:"length"`
	Preview   string `json:"preview"`
}

type jsonError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type jsonReport struct {
	Pattern    string      `json:"pattern"`
	Multiline  bool        `json:"multiline"`
	Status     string      `json:"status"`
	Documents  int         `json:"documents"`
	Steps      int         `json:"steps"`
	Truncated  bool        `json:"truncated"`
	DurationMS int64       `json:"duration_ms"`
	Matches    []jsonMatch `json:"matches"`
	Errors     []jsonError `json:"errors,omitempty"`
}

func outputSearchJSON(cmd *cobra.Command, pattern string, opts domain.SearchOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := searchService.Search(ctx, pattern, opts)
	if report == nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := jsonReport{
		Pattern:    report.Pattern,
		Multiline:  report.Multiline,
		Status:     report.Status.String(),
		Documents:  report.Documents,
		Steps:      report.Steps,
		Truncated:  report.Truncated,
		DurationMS: report.Duration.Milliseconds(),
		Matches:    make([]jsonMatch, 0, len(report.Matches)),
	}
	for _, m := range report.Matches {
		out.Matches = append(out.Matches, jsonMatch{
			Path:      displayPath(m.URI),
			Name:      m.DocumentName,
			Line:      m.StartLine + 1,
			Column:    m.StartColumn + 1,
			EndLine:   m.EndLine + 1,
			EndColumn: m.EndColumn + 1,
			Length:    m.Length,
			Preview:   m.Preview,
		})
	}
	for _, e := range report.Errors {
		out.Errors = append(out.Errors, jsonError{Path: displayPath(e.URI), Error: e.Err.Error()})
	}

	data, merr := json.MarshalIndent(out, "", "  ")
	if merr != nil {
		return fmt.Errorf("failed to marshal results: %w", merr)
	}
	cmd.Println(string(data))
	return err
}
