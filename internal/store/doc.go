// Package store provides the persistence layer for roundboard.
//
// The package defines the [BlobStore] interface: a handful of named string
// values, each read and written whole. The result catalog, the last checked
// date and the post list are each one blob. Backends:
//   - BoltDB (default), an embedded key-value store, see [NewBolt]
//   - SQLite, a single blobs table, see [NewSQLite]
//   - [Memory], for dry runs and tests
//
// Use [Open] to obtain the configured backend:
//
//	blobs, err := store.Open(cfg.StorageBackend, params.AppdataDir)
//	if err != nil {
//	    return err
//	}
//	defer blobs.Close()
package store
