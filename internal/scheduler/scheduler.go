// Package scheduler runs the periodic new day check and result syncs.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
)

// Syncer is the part of the reconciler the watcher drives.
type Syncer interface {
	SyncToday(ctx context.Context) bool
	SyncRange(ctx context.Context, daysBack int) map[string]model.RoundRecord
}

// Roller runs the new day check.
type Roller interface {
	Rollover(todayKey string) (bool, error)
}

// ExportFunc re-renders published output after a successful sync.
type ExportFunc func(ctx context.Context) error

// Options configures a Watcher. Zero intervals fall back to defaults.
type Options struct {
	SyncInterval     time.Duration
	RolloverInterval time.Duration
	HistoryDays      int

	// Export runs after every sync that merged a record, when set
	Export ExportFunc
}

// Watcher keeps today's record fresh.
type Watcher struct {
	clock  clock.Clock
	syncer Syncer
	roller Roller
	opts   Options
	logger *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// New creates a watcher.
func New(c clock.Clock, syncer Syncer, roller Roller, opts Options) *Watcher {
	if c == nil {
		c = clock.System{}
	}

	if opts.SyncInterval <= 0 {
		opts.SyncInterval = 5 * time.Minute
	}

	if opts.RolloverInterval <= 0 {
		opts.RolloverInterval = time.Minute
	}

	return &Watcher{
		clock:  c,
		syncer: syncer,
		roller: roller,
		opts:   opts,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger.
func (w *Watcher) WithLogger(logger *slog.Logger) *Watcher {
	if logger != nil {
		w.logger = logger
	}

	return w
}

// Start begins the background loops. Calling Start on a running watcher
// does nothing.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}

	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.running = true

	w.wg.Add(1)
	go w.run()

	w.logger.Info("watcher started",
		"sync_interval", w.opts.SyncInterval,
		"rollover_interval", w.opts.RolloverInterval,
		"history_days", w.opts.HistoryDays)
}

// Stop cancels the loops and waits for them to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.running = false
	w.mu.Unlock()

	w.wg.Wait()
	w.logger.Info("watcher stopped")
}

// Running reports whether the loops are active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.running
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Start()
	<-ctx.Done()
	w.Stop()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	ctx := w.ctx

	w.rollover()

	if w.syncer.SyncToday(ctx) {
		w.export(ctx)
	}

	if w.opts.HistoryDays > 0 {
		if len(w.syncer.SyncRange(ctx, w.opts.HistoryDays)) > 0 {
			w.export(ctx)
		}
	}

	rollTicker := time.NewTicker(w.opts.RolloverInterval)
	defer rollTicker.Stop()

	syncTicker := time.NewTicker(w.opts.SyncInterval)
	defer syncTicker.Stop()

	for {
		select {
		case <-rollTicker.C:
			w.rollover()
		case <-syncTicker.C:
			if w.syncer.SyncToday(ctx) {
				w.export(ctx)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) rollover() {
	key := clock.Today(w.clock)

	isNew, err := w.roller.Rollover(key)
	if err != nil {
		w.logger.Error("new day check failed", "date", key, "error", err)
		return
	}

	if isNew {
		w.logger.Info("new day detected", "date", key)
	}
}

func (w *Watcher) export(ctx context.Context) {
	if w.opts.Export == nil || ctx.Err() != nil {
		return
	}

	if err := w.opts.Export(ctx); err != nil {
		w.logger.Error("export after sync failed", "error", err)
	}
}
