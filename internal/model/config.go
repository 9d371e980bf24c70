package model

import (
	"time"
)

// Storage backends for the catalog blob.
const (
	StorageBolt   = "bolt"
	StorageSQLite = "sqlite"
)

// Config holds the application configuration
type Config struct {
	// SourceURL is the base URL or local directory holding <date>.txt files
	SourceURL string `ini:"source_url"`

	// SourcePrefix is the folder inside the source, e.g. "results/"
	SourcePrefix string `ini:"source_prefix"`

	// StorageBackend selects where the catalog blob lives (bolt or sqlite)
	StorageBackend string `ini:"storage_backend"`

	// SyncIntervalSeconds is how often today's file is fetched
	SyncIntervalSeconds int `ini:"sync_interval"`

	// RolloverIntervalSeconds is how often the new day check runs
	RolloverIntervalSeconds int `ini:"rollover_interval"`

	// HistoryDays is how many previous days are fetched at startup
	HistoryDays int `ini:"history_days"`

	// FetchTimeoutSeconds bounds every single fetch
	FetchTimeoutSeconds int `ini:"fetch_timeout"`

	// FetchConcurrency bounds parallel fetches during a range sync
	FetchConcurrency int `ini:"fetch_concurrency"`

	// SiteDir is the output directory for static HTML exports
	SiteDir string `ini:"site_dir"`

	// OldResultsLimit is how many older days the site shows
	OldResultsLimit int `ini:"old_results_limit"`

	// SiteTitle is the heading of exported pages
	SiteTitle string `ini:"site_title"`

	// AnalyticsID is stamped into exported pages when set
	AnalyticsID string `ini:"analytics_id"`

	// AdsenseCode is an ad snippet stamped into exported pages when set
	AdsenseCode string `ini:"adsense_code"`

	// ExportOnSync re-renders the site after every successful watch sync
	ExportOnSync bool `ini:"export_on_sync"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		SourceURL:               "",
		SourcePrefix:            "",
		StorageBackend:          StorageBolt,
		SyncIntervalSeconds:     300, // 5 minutes
		RolloverIntervalSeconds: 60,
		HistoryDays:             30,
		FetchTimeoutSeconds:     15,
		FetchConcurrency:        4,
		SiteDir:                 "site",
		OldResultsLimit:         20,
		SiteTitle:               "Kolkata FF Results",
	}
}

// SyncInterval returns SyncIntervalSeconds as a duration.
func (c Config) SyncInterval() time.Duration {
	return seconds(c.SyncIntervalSeconds, 300)
}

// RolloverInterval returns RolloverIntervalSeconds as a duration.
func (c Config) RolloverInterval() time.Duration {
	return seconds(c.RolloverIntervalSeconds, 60)
}

// FetchTimeout returns FetchTimeoutSeconds as a duration.
func (c Config) FetchTimeout() time.Duration {
	return seconds(c.FetchTimeoutSeconds, 15)
}

func seconds(v, fallback int) time.Duration {
	if v <= 0 {
		v = fallback
	}

	return time.Duration(v) * time.Second
}
