package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/inovacc/roundboard/internal/model"
)

const configSection = "roundboard"

// LoadConfig reads the ini file at path over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (model.Config, error) {
	cfg := model.DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if err := file.Section(configSection).MapTo(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to map config %s: %w", path, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// SaveConfig validates cfg and writes it to path.
func SaveConfig(path string, cfg model.Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}

	file := ini.Empty()

	if err := file.Section(configSection).ReflectFrom(&cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save config %s: %w", path, err)
	}

	return nil
}

// ValidateConfig rejects settings the application cannot run with.
func ValidateConfig(cfg model.Config) error {
	switch cfg.StorageBackend {
	case model.StorageBolt, model.StorageSQLite:
	default:
		return &ConfigError{Key: "storage_backend", Value: cfg.StorageBackend, Reason: "must be bolt or sqlite"}
	}

	checks := []struct {
		key   string
		value int
	}{
		{"sync_interval", cfg.SyncIntervalSeconds},
		{"rollover_interval", cfg.RolloverIntervalSeconds},
		{"fetch_timeout", cfg.FetchTimeoutSeconds},
		{"fetch_concurrency", cfg.FetchConcurrency},
	}

	for _, c := range checks {
		if c.value <= 0 {
			return &ConfigError{Key: c.key, Value: fmt.Sprint(c.value), Reason: "must be positive"}
		}
	}

	if cfg.HistoryDays < 0 {
		return &ConfigError{Key: "history_days", Value: fmt.Sprint(cfg.HistoryDays), Reason: "must not be negative"}
	}

	if cfg.OldResultsLimit < 0 {
		return &ConfigError{Key: "old_results_limit", Value: fmt.Sprint(cfg.OldResultsLimit), Reason: "must not be negative"}
	}

	if cfg.SourcePrefix != "" && !strings.HasSuffix(cfg.SourcePrefix, "/") {
		return &ConfigError{Key: "source_prefix", Value: cfg.SourcePrefix, Reason: "must end with /"}
	}

	return nil
}

// ShowConfig displays the configuration
func ShowConfig(w io.Writer, path string, cfg model.Config) {
	source := cfg.SourceURL
	if source == "" {
		source = "(not set)"
	}

	_, _ = fmt.Fprintf(w, "Current Configuration (%s):\n", path)
	_, _ = fmt.Fprintln(w, "=====================")
	_, _ = fmt.Fprintf(w, "Source:             %s%s\n", source, cfg.SourcePrefix)
	_, _ = fmt.Fprintf(w, "Storage Backend:    %s\n", cfg.StorageBackend)
	_, _ = fmt.Fprintf(w, "Sync Interval:      %d seconds\n", cfg.SyncIntervalSeconds)
	_, _ = fmt.Fprintf(w, "Rollover Interval:  %d seconds\n", cfg.RolloverIntervalSeconds)
	_, _ = fmt.Fprintf(w, "History Days:       %d\n", cfg.HistoryDays)
	_, _ = fmt.Fprintf(w, "Fetch Timeout:      %d seconds\n", cfg.FetchTimeoutSeconds)
	_, _ = fmt.Fprintf(w, "Fetch Concurrency:  %d\n", cfg.FetchConcurrency)
	_, _ = fmt.Fprintf(w, "Site Directory:     %s\n", cfg.SiteDir)
	_, _ = fmt.Fprintf(w, "Site Title:         %s\n", cfg.SiteTitle)
	_, _ = fmt.Fprintf(w, "Old Results Limit:  %d\n", cfg.OldResultsLimit)
	_, _ = fmt.Fprintf(w, "Analytics ID:       %s\n", cfg.AnalyticsID)
	_, _ = fmt.Fprintf(w, "Export On Sync:     %t\n", cfg.ExportOnSync)
}

// ResetConfig resets the configuration to default values
func ResetConfig(path string) (model.Config, error) {
	cfg := model.DefaultConfig()

	if err := SaveConfig(path, cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
