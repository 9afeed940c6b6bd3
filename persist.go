package bussinbank

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage persists a whole LedgerData at once.
type Storage interface {
	// Load returns the persisted ledger. It returns an error wrapping
	// fs.ErrNotExist when nothing has been persisted yet.
	Load() (*LedgerData, error)
	// Save durably replaces the persisted ledger with l.
	Save(l *LedgerData) error
}

// FileStorage keeps the ledger in a single JSON file.
//
// Saves write a temporary file in the same directory, sync it, and rename it
// over the canonical path, so a reader never sees a half-written file and a
// crash mid-write leaves the previous version in place.
type FileStorage struct {
	path   string
	rename func(oldpath, newpath string) error
}

// NewFileStorage returns a FileStorage for the ledger file at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path, rename: os.Rename}
}

// Path returns the canonical ledger file path.
func (s *FileStorage) Path() string { return s.path }

// Load decodes the ledger file. A file that exists but does not decode into a
// valid LedgerData is reported as a *CorruptedStoreError.
func (s *FileStorage) Load() (*LedgerData, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not open ledger file %q: %w", s.path, err)
	}
	if err != nil {
		return nil, &PersistenceError{Op: "open", Path: s.path, Err: err}
	}
	defer f.Close()

	l, err := DecodeLedger(f)
	if err != nil {
		return nil, &CorruptedStoreError{Path: s.path, Err: err}
	}
	return l, nil
}

// Save atomically replaces the ledger file with l.
func (s *FileStorage) Save(l *LedgerData) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "create directory for", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &PersistenceError{Op: "create temporary file for", Path: s.path, Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := EncodeLedger(tmp, l); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &PersistenceError{Op: "sync", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Op: "close", Path: s.path, Err: err}
	}
	if err := s.rename(tmp.Name(), s.path); err != nil {
		return &PersistenceError{Op: "rename", Path: s.path, Err: err}
	}
	committed = true
	syncDir(dir)
	return nil
}

// syncDir makes the rename durable. Some platforms cannot sync a directory, errors are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
