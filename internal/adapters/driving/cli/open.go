package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docgrep/internal/core/domain"
)

// stdinURI identifies a document read from standard input.
const stdinURI = "stdin:"

var openHidden bool

var openCmd = &cobra.Command{
	Use:   "open PATH...",
	Short: "List the documents a set of paths would open",
	Long: `Opens files and directories the way search does and lists the resulting
documents. Directories are walked recursively; hidden entries, binary files,
and files over files.max_size_kb are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVar(&openHidden, "hidden", false, "include hidden files and directories")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := openInputs(cmd, args, openHidden)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		cmd.Println("No documents opened.")
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("  %-40s %8d lines  %s\n", displayPath(doc.URI), doc.LineCount(), mimeType(doc))
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

// openInputs opens paths as documents, or standard input when paths is
// empty or "-".
func openInputs(cmd *cobra.Command, paths []string, hidden bool) ([]*domain.Document, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(paths) == 0 || (len(paths) == 1 && paths[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		doc, err := documentService.OpenText(ctx, stdinURI, "(stdin)", string(data))
		if err != nil {
			return nil, err
		}
		return []*domain.Document{doc}, nil
	}

	files := domain.DefaultAppSettings().Files
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			files = settings.Files
		}
	}
	if hidden {
		files.IncludeHidden = true
	}

	docs, err := documentService.OpenWith(ctx, paths, files)
	if err != nil {
		return nil, fmt.Errorf("failed to open documents: %w", err)
	}
	return docs, nil
}

// displayPath shortens a document URI relative to the working directory.
func displayPath(uri string) string {
	if !filepath.IsAbs(uri) {
		return uri
	}
	wd, err := os.Getwd()
	if err != nil {
		return uri
	}
	rel, err := filepath.Rel(wd, uri)
	if err != nil || strings.HasPrefix(rel, "..") {
		return uri
	}
	return rel
}

func mimeType(doc *domain.Document) string {
	if mt, ok := doc.Metadata["mime_type"].(string); ok && mt != "" {
		return mt
	}
	return "text/plain"
}
