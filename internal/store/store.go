package store

import (
	"fmt"
	"path/filepath"

	"github.com/inovacc/roundboard/internal/model"
)

// Well-known blob names.
const (
	BlobResults     = "results"         // date key -> RoundRecord catalog JSON
	BlobLastChecked = "lastCheckedDate" // last date key seen by the new day check
	BlobPosts       = "posts"           // category -> []Post JSON
)

// BlobStore persists named string values. Every value is read and written
// whole; an absent blob reads as "".
type BlobStore interface {
	Ping() error
	GetBlob(name string) (string, error)
	SetBlob(name, value string) error
	Close() error
}

// Open opens the configured backend inside dir.
func Open(backend, dir string) (BlobStore, error) {
	switch backend {
	case "", model.StorageBolt:
		return NewBolt(filepath.Join(dir, "roundboard.bolt"))
	case model.StorageSQLite:
		return NewSQLite(filepath.Join(dir, "roundboard.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
