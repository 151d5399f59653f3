package driven

import "context"

// LoadOptions controls which files a DocumentLoader opens.
type LoadOptions struct {
	// IncludeHidden opens dot-files and descends into dot-directories.
	IncludeHidden bool

	// MaxSizeBytes skips larger files. Zero is unlimited.
	MaxSizeBytes int64
}

// LoadedFile is the raw content of one file.
type LoadedFile struct {
	// Path is the absolute path.
	Path string

	// Name is the display name.
	Name string

	// Text is the file content.
	Text string

	// MIMEType is detected from the file extension.
	MIMEType string
}

// DocumentLoader reads files for opening as documents.
// Directories are walked recursively. Results keep argument order,
// then lexical order within a directory.
type DocumentLoader interface {
	Load(ctx context.Context, paths []string, opts LoadOptions) ([]LoadedFile, error)
}
