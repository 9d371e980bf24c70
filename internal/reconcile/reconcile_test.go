package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/results"
	"github.com/inovacc/roundboard/internal/source"
	"github.com/inovacc/roundboard/internal/store"
)

// 2025-10-28 09:30 local
var now = time.Date(2025, 10, 28, 4, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu       sync.Mutex
	files    map[string]source.Resource
	errs     map[string]error
	block    map[string]bool
	calls    []string
	inflight atomic.Int32
	peak     atomic.Int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		files: make(map[string]source.Resource),
		errs:  make(map[string]error),
		block: make(map[string]bool),
	}
}

func (f *fakeSource) Fetch(ctx context.Context, name string) (source.Resource, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)

	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, name)
	res, ok := f.files[name]
	err := f.errs[name]
	blocked := f.block[name]
	f.mu.Unlock()

	if blocked {
		<-ctx.Done()
		return source.Resource{}, &source.TransportError{Name: name, Err: ctx.Err()}
	}

	// Give parallel fetches a chance to overlap.
	time.Sleep(5 * time.Millisecond)

	if err != nil {
		return source.Resource{}, err
	}

	if !ok {
		return source.Resource{}, source.ErrNotFound
	}

	return res, nil
}

func (f *fakeSource) put(key, body string, modTime time.Time) {
	f.files[source.FileName(key)] = source.Resource{Body: body, ModTime: modTime}
}

func setup(t *testing.T, opts Options) (*Reconciler, *fakeSource, *results.Store, *clock.Fake) {
	t.Helper()

	fake := clock.NewFake(now)
	src := newFakeSource()
	rs := results.New(store.NewMemory(), fake)

	return New(fake, src, rs, opts), src, rs, fake
}

func TestSyncToday_MergesFetchedFile(t *testing.T) {
	r, src, rs, _ := setup(t, Options{})

	published := now.Add(-time.Hour)
	src.put("2025-10-28", "1. 239, 4\n2. 108\n", published)

	require.True(t, r.SyncToday(context.Background()))

	rec, err := rs.Get("2025-10-28")
	require.NoError(t, err)
	assert.Equal(t, model.Round{Digits: "239", Sum: "4"}, rec.Rounds[0])
	assert.Equal(t, model.Round{Digits: "108", Sum: "9"}, rec.Rounds[1])
	assert.True(t, rec.CreatedAt.Equal(published))
	assert.Equal(t, int64(1), r.Stats().Synced)
}

func TestSyncToday_NotFoundIsQuiet(t *testing.T) {
	r, _, rs, _ := setup(t, Options{})

	assert.False(t, r.SyncToday(context.Background()))

	has, err := rs.Has("2025-10-28")
	require.NoError(t, err)
	assert.False(t, has)
	assert.Equal(t, int64(1), r.Stats().NotFound)
}

func TestSyncToday_TransportErrorIsContained(t *testing.T) {
	r, src, _, _ := setup(t, Options{})
	src.errs[source.FileName("2025-10-28")] = &source.TransportError{Name: "x", Err: errors.New("connection reset")}

	assert.False(t, r.SyncToday(context.Background()))
	assert.Equal(t, int64(1), r.Stats().Failed)
}

func TestSyncToday_TimeoutMapsToNotFound(t *testing.T) {
	r, src, _, _ := setup(t, Options{Timeout: 20 * time.Millisecond})
	src.block[source.FileName("2025-10-28")] = true

	assert.False(t, r.SyncToday(context.Background()))
	assert.Equal(t, int64(1), r.Stats().NotFound)
	assert.Zero(t, r.Stats().Failed)
}

func TestSyncToday_EmptyFileIsSkipped(t *testing.T) {
	r, src, rs, _ := setup(t, Options{})

	_, err := rs.Edit("2025-10-28", [model.RoundCount]string{"777"})
	require.NoError(t, err)

	src.put("2025-10-28", "no results yet\n", now.Add(time.Hour))

	assert.False(t, r.SyncToday(context.Background()))

	rec, err := rs.Get("2025-10-28")
	require.NoError(t, err)
	assert.Equal(t, "777", rec.Rounds[0].Digits)

	s := r.Stats()
	assert.Equal(t, int64(1), s.Empty)
	assert.Equal(t, int64(1), s.SkippedLines)
}

func TestSyncToday_UnknownPublicationTimeStampedOnInsert(t *testing.T) {
	r, src, rs, _ := setup(t, Options{})
	src.put("2025-10-28", "1. 239", time.Time{})

	require.True(t, r.SyncToday(context.Background()))

	rec, err := rs.Get("2025-10-28")
	require.NoError(t, err)
	assert.True(t, rec.CreatedAt.Equal(now))
}

func TestSyncToday_UnknownPublicationTimeKeepsEdit(t *testing.T) {
	r, src, rs, fake := setup(t, Options{})
	src.put("2025-10-28", "1. 239", time.Time{})

	require.True(t, r.SyncToday(context.Background()))

	fake.Advance(time.Minute)

	_, err := rs.Edit("2025-10-28", [model.RoundCount]string{"555"})
	require.NoError(t, err)

	// The next watcher tick, still without a publication time.
	fake.Advance(5 * time.Minute)
	require.True(t, r.SyncToday(context.Background()))

	rec, err := rs.Get("2025-10-28")
	require.NoError(t, err)
	assert.Equal(t, "555", rec.Rounds[0].Digits)
	assert.True(t, rec.Edited())
	assert.True(t, rec.CreatedAt.Equal(now), "first creation time is kept")
	assert.Equal(t, int64(1), r.Stats().KeptLocal)
}

func TestSyncToday_EditNewerThanPublicationWins(t *testing.T) {
	r, src, rs, fake := setup(t, Options{})

	published := now.Add(-time.Hour)
	src.put("2025-10-28", "1. 239", published)

	_, err := rs.Edit("2025-10-28", [model.RoundCount]string{"777"})
	require.NoError(t, err)

	require.True(t, r.SyncToday(context.Background()))

	rec, err := rs.Get("2025-10-28")
	require.NoError(t, err)
	assert.Equal(t, "777", rec.Rounds[0].Digits)
	assert.Equal(t, int64(1), r.Stats().KeptLocal)

	// A file published after the edit replaces it.
	fake.Advance(time.Hour)
	src.put("2025-10-28", "1. 239\n2. 100", fake.Now())

	require.True(t, r.SyncToday(context.Background()))

	rec, err = rs.Get("2025-10-28")
	require.NoError(t, err)
	assert.Equal(t, "239", rec.Rounds[0].Digits)
	assert.False(t, rec.Edited())
}

func TestSyncRange_SkipsMissingDates(t *testing.T) {
	r, src, rs, _ := setup(t, Options{})
	src.put("2025-10-26", "1. 239, 4", now.Add(-48*time.Hour))

	got := r.SyncRange(context.Background(), 3)
	require.Len(t, got, 1)
	assert.Equal(t, "239", got["2025-10-26"].Rounds[0].Digits)

	catalog, err := rs.Catalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-26"}, catalog.Keys())

	assert.ElementsMatch(t, []string{"2025-10-27.txt", "2025-10-26.txt", "2025-10-25.txt"}, src.calls)
	assert.Equal(t, int64(2), r.Stats().NotFound)
}

func TestSyncRange_BoundsParallelism(t *testing.T) {
	r, src, rs, _ := setup(t, Options{Concurrency: 3})

	keys := clock.PreviousKeys(now, 12)
	for _, k := range keys {
		src.put(k, "1. 123\n2. 456", now.Add(-time.Hour))
	}

	src.errs[source.FileName(keys[4])] = &source.TransportError{Name: keys[4], Err: errors.New("boom")}

	got := r.SyncRange(context.Background(), 12)
	assert.Len(t, got, 11)
	assert.LessOrEqual(t, src.peak.Load(), int32(3))

	catalog, err := rs.Catalog()
	require.NoError(t, err)
	assert.Len(t, catalog, 11)
	assert.NotContains(t, catalog, keys[4])
}

func TestSyncRange_ZeroDays(t *testing.T) {
	r, src, _, _ := setup(t, Options{})

	assert.Empty(t, r.SyncRange(context.Background(), 0))
	assert.Empty(t, src.calls)
}

func TestSyncRange_CancelledIsNotAFailure(t *testing.T) {
	r, src, rs, _ := setup(t, Options{})

	for _, k := range clock.PreviousKeys(now, 5) {
		src.put(k, "1. 123", now.Add(-time.Hour))
		src.block[source.FileName(k)] = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, r.SyncRange(ctx, 5))

	s := r.Stats()
	assert.Zero(t, s.Failed)
	assert.Zero(t, s.NotFound)
	assert.Zero(t, s.Synced)

	catalog, err := rs.Catalog()
	require.NoError(t, err)
	assert.Empty(t, catalog)
}
