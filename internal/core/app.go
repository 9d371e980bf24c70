package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/params"
	"github.com/inovacc/roundboard/internal/posts"
	"github.com/inovacc/roundboard/internal/reconcile"
	"github.com/inovacc/roundboard/internal/render"
	"github.com/inovacc/roundboard/internal/results"
	"github.com/inovacc/roundboard/internal/scheduler"
	"github.com/inovacc/roundboard/internal/source"
	"github.com/inovacc/roundboard/internal/store"
)

// Options tells Open where things live.
type Options struct {
	// DataDir holds the store and the default config file
	DataDir string

	// ConfigPath overrides <DataDir>/roundboard.ini
	ConfigPath string

	Clock  clock.Clock
	Logger *slog.Logger
}

// App is an opened data directory.
type App struct {
	Config     model.Config
	ConfigPath string
	DataDir    string

	Clock    clock.Clock
	Blobs    store.BlobStore
	Results  *results.Store
	Posts    *posts.Manager
	Renderer *render.Renderer

	logger *slog.Logger
}

// Open loads the configuration and opens the configured store.
func Open(opts Options) (*App, error) {
	if opts.DataDir == "" {
		return nil, errors.New("data directory is required")
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(opts.DataDir, params.ConfigFileName)
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	return OpenWithConfig(opts, cfgPath, cfg)
}

// OpenWithConfig opens the store for an already loaded configuration.
func OpenWithConfig(opts Options, cfgPath string, cfg model.Config) (*App, error) {
	c := opts.Clock
	if c == nil {
		c = clock.System{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	blobs, err := store.Open(cfg.StorageBackend, opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	renderer, err := render.New(render.SiteConfigFrom(cfg))
	if err != nil {
		_ = blobs.Close()
		return nil, err
	}

	renderer.WithClock(c)

	return &App{
		Config:     cfg,
		ConfigPath: cfgPath,
		DataDir:    opts.DataDir,
		Clock:      c,
		Blobs:      blobs,
		Results:    results.New(blobs, c),
		Posts:      posts.NewManager(blobs, c),
		Renderer:   renderer,
		logger:     logger,
	}, nil
}

// Close closes the store.
func (a *App) Close() error {
	return a.Blobs.Close()
}

// Today returns today's date key.
func (a *App) Today() string {
	return clock.Today(a.Clock)
}

// Source builds the configured result source.
func (a *App) Source() (source.Source, error) {
	if a.Config.SourceURL == "" {
		return nil, ErrSourceNotConfigured
	}

	httpCfg := source.DefaultHTTPConfig()
	httpCfg.Timeout = a.Config.FetchTimeout()

	return source.New(a.Config.SourceURL, a.Config.SourcePrefix, httpCfg)
}

// Reconciler builds a reconciler over the configured source.
func (a *App) Reconciler() (*reconcile.Reconciler, error) {
	src, err := a.Source()
	if err != nil {
		return nil, err
	}

	r := reconcile.New(a.Clock, src, a.Results, reconcile.Options{
		Timeout:     a.Config.FetchTimeout(),
		Concurrency: a.Config.FetchConcurrency,
	})

	return r.WithLogger(a.logger.With("component", "reconcile")), nil
}

// Watcher builds the background watcher. When ExportOnSync is set the site
// is re-exported after every successful sync.
func (a *App) Watcher() (*scheduler.Watcher, error) {
	r, err := a.Reconciler()
	if err != nil {
		return nil, err
	}

	opts := scheduler.Options{
		SyncInterval:     a.Config.SyncInterval(),
		RolloverInterval: a.Config.RolloverInterval(),
		HistoryDays:      a.Config.HistoryDays,
	}

	if a.Config.ExportOnSync {
		opts.Export = func(ctx context.Context) error {
			_, err := a.ExportSite(ctx)
			return err
		}
	}

	w := scheduler.New(a.Clock, r, a.Results, opts)

	return w.WithLogger(a.logger.With("component", "watcher")), nil
}

// SiteDir resolves the export directory; relative paths are below DataDir.
func (a *App) SiteDir() string {
	dir := a.Config.SiteDir
	if dir == "" {
		dir = model.DefaultConfig().SiteDir
	}

	if filepath.IsAbs(dir) {
		return dir
	}

	return filepath.Join(a.DataDir, dir)
}

// ExportSite renders index.html and every published post into SiteDir.
// It returns the written files relative to SiteDir.
func (a *App) ExportSite(ctx context.Context) ([]string, error) {
	dir := a.SiteDir()

	catalog, err := a.Results.Catalog()
	if err != nil {
		return nil, err
	}

	if _, err := a.Renderer.ExportIndex(dir, catalog, a.Today()); err != nil {
		return nil, err
	}

	files := []string{"index.html"}

	if err := ctx.Err(); err != nil {
		return files, err
	}

	postFiles, err := posts.NewExporter(a.Posts, a.Renderer).ExportAll(dir)
	files = append(files, postFiles...)

	if err != nil {
		return files, err
	}

	a.logger.Info("site exported", "dir", dir, "files", len(files))

	return files, nil
}
