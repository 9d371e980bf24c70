// Package results keeps the date-keyed result catalog.
//
// The catalog is persisted as a single blob and every mutation is a
// read-modify-write of the whole catalog. A mutex serializes those cycles
// inside the process, so parallel merges of different dates never lose
// updates. Separate processes writing the same store are not coordinated.
package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
	"github.com/inovacc/roundboard/internal/store"
)

// ErrNoData rejects a manual edit that carries no round at all.
var ErrNoData = errors.New("at least one round must have digits")

// MergeOutcome tells what Merge did with an incoming record.
type MergeOutcome int

const (
	MergeInserted  MergeOutcome = iota // no local record existed
	MergeReplaced                      // incoming replaced the local record
	MergeKeptLocal                     // a newer manual edit won
	MergeUnchanged                     // incoming matched the stored record
)

func (o MergeOutcome) String() string {
	switch o {
	case MergeInserted:
		return "inserted"
	case MergeReplaced:
		return "replaced"
	case MergeKeptLocal:
		return "kept local edit"
	case MergeUnchanged:
		return "unchanged"
	}

	return "unknown"
}

// Store is the catalog over a BlobStore.
type Store struct {
	blobs store.BlobStore
	clock clock.Clock
	mu    sync.Mutex
}

// New creates a result store. A nil clock means the system clock.
func New(blobs store.BlobStore, c clock.Clock) *Store {
	if c == nil {
		c = clock.System{}
	}

	return &Store{blobs: blobs, clock: c}
}

// Catalog returns a copy of the whole catalog.
func (s *Store) Catalog() (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Get returns the record for key, or an empty record that is not persisted.
func (s *Store) Get(key string) (model.RoundRecord, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return model.RoundRecord{}, err
	}

	if rec, ok := catalog[key]; ok {
		return rec, nil
	}

	return model.EmptyRecord(s.clock.Now()), nil
}

// Has reports whether key has a stored record.
func (s *Store) Has(key string) (bool, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return false, err
	}

	_, ok := catalog[key]

	return ok, nil
}

// Put overwrites the record for key.
func (s *Store) Put(key string, rec model.RoundRecord) error {
	if _, err := clock.ParseDateKey(key); err != nil {
		return err
	}

	return s.update(func(c model.Catalog) (bool, error) {
		c[key] = rec
		return true, nil
	})
}

// EnsureDay creates an empty record for key when none exists. It reports
// whether a record was created.
func (s *Store) EnsureDay(key string) (bool, error) {
	if _, err := clock.ParseDateKey(key); err != nil {
		return false, err
	}

	created := false

	err := s.update(func(c model.Catalog) (bool, error) {
		if _, ok := c[key]; ok {
			return false, nil
		}

		c[key] = model.EmptyRecord(s.clock.Now())
		created = true

		return true, nil
	})

	return created, err
}

// Merge reconciles a fetched record with the stored one. A manual edit made
// at or after the incoming record's creation is never overwritten, and an
// incoming record without a creation time never replaces an edit. Such a
// record is stamped with the clock only when it is stored.
func (s *Store) Merge(key string, incoming model.RoundRecord) (MergeOutcome, error) {
	if _, err := clock.ParseDateKey(key); err != nil {
		return MergeUnchanged, err
	}

	var outcome MergeOutcome

	err := s.update(func(c model.Catalog) (bool, error) {
		local, ok := c[key]
		if !ok {
			outcome = MergeInserted
			c[key] = s.stamped(incoming)

			return true, nil
		}

		if local.Edited() && !incomingIsNewer(*local.LastEditedAt, incoming.CreatedAt) {
			outcome = MergeKeptLocal
			return false, nil
		}

		next := incoming
		if !local.CreatedAt.IsZero() && (next.CreatedAt.IsZero() || local.CreatedAt.Before(next.CreatedAt)) {
			next.CreatedAt = local.CreatedAt
		}

		next = s.stamped(next)

		if sameRecord(local, next) {
			outcome = MergeUnchanged
			return false, nil
		}

		outcome = MergeReplaced
		c[key] = next

		return true, nil
	})

	return outcome, err
}

// Edit stores manually entered digits for key. Every non-empty entry must
// be exactly three digits; sums are derived. Invalid input is never stored.
func (s *Store) Edit(key string, digits [model.RoundCount]string) (model.RoundRecord, error) {
	if _, err := clock.ParseDateKey(key); err != nil {
		return model.RoundRecord{}, err
	}

	now := s.clock.Now()
	rec := model.EmptyRecord(now)
	filled := 0

	for i, d := range digits {
		if err := model.ValidateDigits(i+1, d); err != nil {
			return model.RoundRecord{}, err
		}

		if d != "" {
			rec.Rounds[i] = model.NewRound(d)
			filled++
		}
	}

	if filled == 0 {
		return model.RoundRecord{}, ErrNoData
	}

	rec.LastEditedAt = &now

	err := s.update(func(c model.Catalog) (bool, error) {
		if local, ok := c[key]; ok && !local.CreatedAt.IsZero() {
			rec.CreatedAt = local.CreatedAt
		}

		c[key] = rec

		return true, nil
	})
	if err != nil {
		return model.RoundRecord{}, err
	}

	return rec, nil
}

// Rollover runs the new day check: when todayKey differs from the last
// checked key it is remembered and an empty record is ensured. It reports
// whether a new day was detected.
func (s *Store) Rollover(todayKey string) (bool, error) {
	last, err := s.blobs.GetBlob(store.BlobLastChecked)
	if err != nil {
		return false, fmt.Errorf("reading last checked date: %w", err)
	}

	if last == todayKey {
		return false, nil
	}

	if _, err := s.EnsureDay(todayKey); err != nil {
		return false, err
	}

	if err := s.blobs.SetBlob(store.BlobLastChecked, todayKey); err != nil {
		return false, fmt.Errorf("writing last checked date: %w", err)
	}

	return true, nil
}

// Import merges every record of catalog, e.g. one exported from a browser.
// Records are normalized first so inconsistent sums are repaired.
func (s *Store) Import(catalog model.Catalog) (map[string]MergeOutcome, error) {
	outcomes := make(map[string]MergeOutcome, len(catalog))

	for _, key := range catalog.Keys() {
		outcome, err := s.Merge(key, catalog[key].Normalize())
		if err != nil {
			return outcomes, fmt.Errorf("importing %s: %w", key, err)
		}

		outcomes[key] = outcome
	}

	return outcomes, nil
}

func (s *Store) update(fn func(model.Catalog) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.load()
	if err != nil {
		return err
	}

	changed, err := fn(catalog)
	if err != nil || !changed {
		return err
	}

	return s.save(catalog)
}

func (s *Store) load() (model.Catalog, error) {
	raw, err := s.blobs.GetBlob(store.BlobResults)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	catalog := make(model.Catalog)
	if raw == "" {
		return catalog, nil
	}

	if err := json.Unmarshal([]byte(raw), &catalog); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	return catalog, nil
}

func (s *Store) save(catalog model.Catalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	if err := s.blobs.SetBlob(store.BlobResults, string(data)); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	return nil
}

// stamped fills a missing creation time with the clock.
func (s *Store) stamped(rec model.RoundRecord) model.RoundRecord {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.clock.Now()
	}

	return rec
}

// incomingIsNewer decides the edit-precedence tie: the local edit wins when
// the timestamps are equal or the incoming record has no creation time.
func incomingIsNewer(editedAt, incomingCreated time.Time) bool {
	if incomingCreated.IsZero() {
		return false
	}

	return incomingCreated.After(editedAt)
}

func sameRecord(a, b model.RoundRecord) bool {
	if !a.Equal(b) || !a.CreatedAt.Equal(b.CreatedAt) {
		return false
	}

	if a.LastEditedAt == nil || b.LastEditedAt == nil {
		return a.LastEditedAt == nil && b.LastEditedAt == nil
	}

	return a.LastEditedAt.Equal(*b.LastEditedAt)
}
