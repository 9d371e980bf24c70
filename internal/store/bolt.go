package store

import (
	"errors"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketBlobs = "blobs" // key: blob name -> raw value

type Bolt struct {
	storage *bbolt.DB
}

// NewBolt opens (or creates) a Bolt database at the specified path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketBlobs))

		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(boltBucketBlobs)) == nil {
			return errors.New("blobs bucket missing")
		}

		return nil
	})
}

func (b *Bolt) GetBlob(name string) (string, error) {
	var value string

	err := b.storage.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketBlobs))

		// bbolt values are only valid inside the transaction; string() copies.
		value = string(bucket.Get([]byte(name)))

		return nil
	})

	return value, err
}

func (b *Bolt) SetBlob(name, value string) error {
	if name == "" {
		return errors.New("blob name is required")
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketBlobs))

		return bucket.Put([]byte(name), []byte(value))
	})
}
