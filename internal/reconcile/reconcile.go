// Package reconcile pulls published result files into the catalog.
//
// Every date is an independent unit of work: a missing file, a transport
// failure, a timeout or an unparseable file skips that date only and never
// surfaces as an error to the caller.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/parser"
	"github.com/inovacc/roundboard/internal/results"
	"github.com/inovacc/roundboard/internal/source"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultConcurrency = 4
)

// Stats are cumulative counters since the reconciler was created.
type Stats struct {
	Synced       int64
	KeptLocal    int64
	NotFound     int64
	Failed       int64
	Empty        int64
	SkippedLines int64
}

// Options tunes a Reconciler. Zero values fall back to defaults.
type Options struct {
	Timeout     time.Duration
	Concurrency int
	Parser      parser.Parser
}

// Reconciler fetches, parses and merges result files.
type Reconciler struct {
	clock   clock.Clock
	source  source.Source
	results *results.Store
	parser  parser.Parser
	logger  *slog.Logger

	timeout     time.Duration
	concurrency int

	synced, keptLocal, notFound, failed, empty, skippedLines atomic.Int64
}

// New creates a reconciler.
func New(c clock.Clock, src source.Source, store *results.Store, opts Options) *Reconciler {
	if c == nil {
		c = clock.System{}
	}

	r := &Reconciler{
		clock:       c,
		source:      src,
		results:     store,
		parser:      opts.Parser,
		logger:      slog.Default(),
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
	}

	if r.parser == nil {
		r.parser = parser.NewTextParser()
	}

	if r.timeout <= 0 {
		r.timeout = defaultTimeout
	}

	if r.concurrency <= 0 {
		r.concurrency = defaultConcurrency
	}

	return r
}

// WithLogger sets the logger used for per-date diagnostics.
func (r *Reconciler) WithLogger(logger *slog.Logger) *Reconciler {
	if logger != nil {
		r.logger = logger
	}

	return r
}

// SyncToday fetches today's file and merges it. It reports whether a record
// was fetched and merged.
func (r *Reconciler) SyncToday(ctx context.Context) bool {
	key := clock.Today(r.clock)

	_, ok := r.syncDate(ctx, key)

	return ok
}

// SyncRange fetches the daysBack calendar days before today in parallel.
// The returned map holds every record that was fetched and merged.
func (r *Reconciler) SyncRange(ctx context.Context, daysBack int) map[string]model.RoundRecord {
	keys := clock.PreviousKeys(r.clock.Now(), daysBack)
	synced := make(map[string]model.RoundRecord, len(keys))

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, key := range keys {
		g.Go(func() error {
			rec, ok := r.syncDate(gctx, key)
			if ok {
				mu.Lock()
				synced[key] = rec
				mu.Unlock()
			}

			// Failures are per date; the group never cancels siblings.
			return nil
		})
	}

	_ = g.Wait()

	r.logger.Info("range sync finished", "days", daysBack, "synced", len(synced))

	return synced
}

// Stats returns a snapshot of the counters.
func (r *Reconciler) Stats() Stats {
	return Stats{
		Synced:       r.synced.Load(),
		KeptLocal:    r.keptLocal.Load(),
		NotFound:     r.notFound.Load(),
		Failed:       r.failed.Load(),
		Empty:        r.empty.Load(),
		SkippedLines: r.skippedLines.Load(),
	}
}

// syncDate is one unit of work. It returns the merged record when the
// fetch succeeded.
func (r *Reconciler) syncDate(ctx context.Context, key string) (model.RoundRecord, bool) {
	defer func() {
		if p := recover(); p != nil {
			r.failed.Add(1)
			r.logger.Error("sync panicked", "date", key, "panic", p)
		}
	}()

	fctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.source.Fetch(fctx, source.FileName(key))

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		r.logger.Debug("sync cancelled", "date", key)

		return model.RoundRecord{}, false
	case errors.Is(err, source.ErrNotFound), errors.Is(err, context.DeadlineExceeded):
		r.notFound.Add(1)
		r.logger.Debug("result not available", "date", key, "error", err)

		return model.RoundRecord{}, false
	default:
		r.failed.Add(1)
		r.logger.Warn("fetch failed", "date", key, "error", err)

		return model.RoundRecord{}, false
	}

	rec, stats := r.parser.Parse(res.Body)
	r.skippedLines.Add(int64(stats.Skipped))

	if stats.Skipped > 0 || stats.Overflow > 0 || stats.ChecksumMismatch > 0 {
		r.logger.Debug("result file had irregular lines",
			"date", key,
			"skipped", stats.Skipped,
			"overflow", stats.Overflow,
			"checksum_mismatch", stats.ChecksumMismatch)
	}

	if rec.Filled() == 0 {
		r.empty.Add(1)
		r.logger.Warn("result file has no rounds", "date", key, "lines", stats.Lines)

		return model.RoundRecord{}, false
	}

	// Zero when the source does not know; Merge then keeps any local edit.
	rec.CreatedAt = res.ModTime

	outcome, err := r.results.Merge(key, rec)
	if err != nil {
		r.failed.Add(1)
		r.logger.Error("merge failed", "date", key, "error", err)

		return model.RoundRecord{}, false
	}

	if outcome == results.MergeKeptLocal {
		r.keptLocal.Add(1)
	}

	r.synced.Add(1)
	r.logger.Info("result synced", "date", key, "rounds", rec.Filled(), "outcome", outcome.String())

	return rec, true
}
