// Package backup keeps copies of the ledger document: a local snapshot
// archive in a bbolt database, and remote backups in Google Cloud Storage.
package backup

import (
	"errors"
	"fmt"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrNotFound is returned when a snapshot is not found.
var ErrNotFound = errors.New("snapshot not found")

const bucketSnapshots = "snapshots"

// keyFormat is RFC3339 with fixed width nanoseconds, so that keys sort chronologically.
const keyFormat = "2006-01-02T15:04:05.000000000Z"

// Archive stores timestamped ledger documents, keyed by their UTC time.
type Archive struct {
	db *bolt.DB
}

// OpenArchive opens or creates the archive database at path.
func OpenArchive(path string) (*Archive, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %q: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %w", bucketSnapshots, err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database.
func (a *Archive) Close() error { return a.db.Close() }

// Key returns the archive key of a snapshot taken at.
func Key(at time.Time) string { return at.UTC().Format(keyFormat) }

// Put stores doc as the snapshot taken at, and returns its key.
func (a *Archive) Put(at time.Time, doc []byte) (string, error) {
	key := Key(at)
	err := a.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).Put([]byte(key), doc)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store snapshot %s: %w", key, err)
	}
	return key, nil
}

// List returns every snapshot key, oldest first.
func (a *Archive) List() ([]string, error) {
	var keys []string
	err := a.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Get returns the document stored under key.
func (a *Archive) Get(key string) ([]byte, error) {
	var doc []byte
	err := a.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSnapshots)).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		doc = slices.Clone(v) // v is only valid during the transaction
		return nil
	})
	return doc, err
}

// Latest returns the most recent snapshot.
func (a *Archive) Latest() (key string, doc []byte, err error) {
	err = a.db.View(func(tx *bolt.Tx) error {
		k, v := tx.Bucket([]byte(bucketSnapshots)).Cursor().Last()
		if k == nil {
			return ErrNotFound
		}
		key, doc = string(k), slices.Clone(v)
		return nil
	})
	return key, doc, err
}

// Prune deletes all but the keep most recent snapshots, and returns how many were deleted.
func (a *Archive) Prune(keep int) (int, error) {
	keys, err := a.List()
	if err != nil {
		return 0, err
	}
	if len(keys) <= keep {
		return 0, nil
	}
	old := keys[:len(keys)-max(keep, 0)]
	err = a.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshots))
		for _, k := range old {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return len(old), nil
}
