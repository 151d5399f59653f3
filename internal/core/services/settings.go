package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/docgrep/internal/core/domain"
	"github.com/custodia-labs/docgrep/internal/core/ports/driven"
	"github.com/custodia-labs/docgrep/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchBudget     = "search.budget_ms"
	keyProgressInterval = "search.progress_interval_ms"
	keyMatchTimeout     = "search.match_timeout_ms"
	keyIgnoreCase       = "search.ignore_case"
	keyIncludeHidden    = "files.include_hidden"
	keyMaxSizeKB        = "files.max_size_kb"
	keyHistoryEnabled   = "history.enabled"
	keyHistoryLimit     = "history.limit"
)

type settingKind int

const (
	kindInt settingKind = iota
	kindBool
)

var settingKinds = map[string]settingKind{
	keySearchBudget:     kindInt,
	keyProgressInterval: kindInt,
	keyMatchTimeout:     kindInt,
	keyIgnoreCase:       kindBool,
	keyIncludeHidden:    kindBool,
	keyMaxSizeKB:        kindInt,
	keyHistoryEnabled:   kindBool,
	keyHistoryLimit:     kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			Budget:           s.getMillis(keySearchBudget, defaults.Search.Budget),
			ProgressInterval: s.getMillis(keyProgressInterval, defaults.Search.ProgressInterval),
			MatchTimeout:     s.getMillis(keyMatchTimeout, defaults.Search.MatchTimeout),
			IgnoreCase:       s.getBool(keyIgnoreCase, defaults.Search.IgnoreCase),
		},
		Files: domain.FileSettings{
			IncludeHidden: s.getBool(keyIncludeHidden, defaults.Files.IncludeHidden),
			MaxSizeKB:     s.getInt(keyMaxSizeKB, defaults.Files.MaxSizeKB),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
			Limit:   s.getInt(keyHistoryLimit, defaults.History.Limit),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keySearchBudget, int(settings.Search.Budget / time.Millisecond)},
		{keyProgressInterval, int(settings.Search.ProgressInterval / time.Millisecond)},
		{keyMatchTimeout, int(settings.Search.MatchTimeout / time.Millisecond)},
		{keyIgnoreCase, settings.Search.IgnoreCase},
		{keyIncludeHidden, settings.Files.IncludeHidden},
		{keyMaxSizeKB, settings.Files.MaxSizeKB},
		{keyHistoryEnabled, settings.History.Enabled},
		{keyHistoryLimit, settings.History.Limit},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return s.configStore.Save()
}

// Set updates a single setting from its string form and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return s.configStore.Save()
}

// Keys returns the supported config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}
