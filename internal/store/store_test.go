package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/inovacc/roundboard/internal/model"
)

func setupTestBolt(t *testing.T) *Bolt {
	t.Helper()

	db, err := NewBolt(filepath.Join(t.TempDir(), "test.bolt"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})

	return db
}

func setupTestSQLite(t *testing.T) *SQLite {
	t.Helper()

	db, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})

	return db
}

func backends(t *testing.T) map[string]BlobStore {
	return map[string]BlobStore{
		"bolt":   setupTestBolt(t),
		"sqlite": setupTestSQLite(t),
		"memory": NewMemory(),
	}
}

func TestBlobStore_Ping(t *testing.T) {
	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := db.Ping(); err != nil {
				t.Errorf("Ping() error = %v, want nil", err)
			}
		})
	}
}

func TestBlobStore_MissingBlobIsEmpty(t *testing.T) {
	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := db.GetBlob(BlobResults)
			if err != nil {
				t.Fatalf("GetBlob() error = %v", err)
			}

			if got != "" {
				t.Errorf("GetBlob() = %q, want empty", got)
			}
		})
	}
}

func TestBlobStore_SetAndOverwrite(t *testing.T) {
	for name, db := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := db.SetBlob(BlobResults, `{"a":1}`); err != nil {
				t.Fatalf("SetBlob() error = %v", err)
			}

			large := `{"b":"` + strings.Repeat("x", 64*1024) + `"}`
			if err := db.SetBlob(BlobResults, large); err != nil {
				t.Fatalf("SetBlob() overwrite error = %v", err)
			}

			if err := db.SetBlob(BlobLastChecked, "2025-10-28"); err != nil {
				t.Fatalf("SetBlob() error = %v", err)
			}

			got, err := db.GetBlob(BlobResults)
			if err != nil {
				t.Fatalf("GetBlob() error = %v", err)
			}

			if got != large {
				t.Errorf("GetBlob() returned %d bytes, want %d", len(got), len(large))
			}

			got, err = db.GetBlob(BlobLastChecked)
			if err != nil || got != "2025-10-28" {
				t.Errorf("GetBlob(lastChecked) = %q, %v", got, err)
			}
		})
	}
}

func TestBolt_RejectsEmptyName(t *testing.T) {
	db := setupTestBolt(t)

	if err := db.SetBlob("", "x"); err == nil {
		t.Error("SetBlob(\"\") error = nil, want error")
	}
}

func TestBolt_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.bolt")

	db, err := NewBolt(path)
	if err != nil {
		t.Fatalf("NewBolt() error = %v", err)
	}

	if err := db.SetBlob(BlobPosts, "kept"); err != nil {
		t.Fatalf("SetBlob() error = %v", err)
	}

	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	db, err = NewBolt(path)
	if err != nil {
		t.Fatalf("NewBolt() reopen error = %v", err)
	}
	defer db.Close()

	got, err := db.GetBlob(BlobPosts)
	if err != nil || got != "kept" {
		t.Errorf("GetBlob() after reopen = %q, %v", got, err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range []string{"", model.StorageBolt, model.StorageSQLite} {
		db, err := Open(backend, dir)
		if err != nil {
			t.Fatalf("Open(%q) error = %v", backend, err)
		}

		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}

	if _, err := Open("redis", dir); err == nil {
		t.Error("Open(redis) error = nil, want error")
	}
}
