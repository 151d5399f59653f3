package domain

import "time"

// SearchSettings configures the search engine.
type SearchSettings struct {
	// Budget is the time slice a single search step may spend scanning.
	Budget time.Duration

	// ProgressInterval throttles "now searching" notifications.
	ProgressInterval time.Duration

	// MatchTimeout bounds a single regex match attempt. Zero disables it.
	MatchTimeout time.Duration

	// IgnoreCase is the default case sensitivity.
	IgnoreCase bool
}

// FileSettings configures how files are opened as documents.
type FileSettings struct {
	// IncludeHidden opens dot-files when walking directories.
	IncludeHidden bool

	// MaxSizeKB skips files larger than this. Zero is unlimited.
	MaxSizeKB int
}

// HistorySettings configures search history.
type HistorySettings struct {
	// Enabled records finished searches.
	Enabled bool

	// Limit caps the number of entries kept.
	Limit int
}

// AppSettings represents the complete application configuration.
type AppSettings struct {
	Search  SearchSettings
	Files   FileSettings
	History HistorySettings
}

// Default engine timings.
const (
	DefaultSearchBudget     = 100 * time.Millisecond
	DefaultProgressInterval = 100 * time.Millisecond
)

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Budget:           DefaultSearchBudget,
			ProgressInterval: DefaultProgressInterval,
			MatchTimeout:     0,
			IgnoreCase:       false,
		},
		Files: FileSettings{
			IncludeHidden: false,
			MaxSizeKB:     4096,
		},
		History: HistorySettings{
			Enabled: true,
			Limit:   100,
		},
	}
}
