package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
	"github.com/custodia-labs/docgrep/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader reads local files so they can be opened as documents.
type Loader struct {
	workers int
}

// NewLoader creates a loader that reads up to workers files at once.
// A value of zero or less uses the number of CPUs.
func NewLoader(workers int) *Loader {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Loader{workers: workers}
}

// candidate is a file selected for loading.
type candidate struct {
	path string
	name string
}

// Load reads every file named by paths. Directories are walked recursively.
// Hidden and oversized files are only skipped while walking a directory.
// Binary files are always skipped.
func (l *Loader) Load(ctx context.Context, paths []string, opts driven.LoadOptions) ([]driven.LoadedFile, error) {
	var candidates []candidate
	seen := make(map[string]bool)

	for _, p := range paths {
		found, err := l.collect(PathFromURI(p), opts)
		if err != nil {
			return nil, err
		}
		for _, c := range found {
			if !seen[c.path] {
				seen[c.path] = true
				candidates = append(candidates, c)
			}
		}
	}

	results := make([]*driven.LoadedFile, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(c.path)
			if err != nil {
				return fmt.Errorf("read %s: %w", c.path, err)
			}
			if isBinary(content) {
				logger.Debug("skipping binary file %s", c.path)
				return nil
			}
			results[i] = &driven.LoadedFile{
				Path:     c.path,
				Name:     c.name,
				Text:     string(content),
				MIMEType: detectMIMEType(c.path),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]driven.LoadedFile, 0, len(results))
	for _, f := range results {
		if f != nil {
			files = append(files, *f)
		}
	}
	logger.Debug("loaded %d of %d files", len(files), len(candidates))
	return files, nil
}

// collect expands one argument into the files to load.
func (l *Loader) collect(path string, opts driven.LoadOptions) ([]candidate, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		return []candidate{{path: root, name: filepath.Base(root)}}, nil
	}

	var out []candidate
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Warn("skipping %s: %v", p, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if !opts.IncludeHidden && isHidden(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if opts.MaxSizeBytes > 0 {
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.Size() > opts.MaxSizeBytes {
				logger.Debug("skipping %s: %d bytes exceeds limit", p, info.Size())
				return nil
			}
		}

		out = append(out, candidate{path: p, name: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return out, nil
}
