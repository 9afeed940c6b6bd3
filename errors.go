package bussinbank

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSchema is reported when a ledger document has a schema version this package cannot read.
	ErrUnsupportedSchema = errors.New("unsupported schema version")
	// ErrUnknownAccount is reported when an entity references an account that does not exist.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrDuplicateID is reported when an id is already in use.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrBalanceMismatch is reported when an account balance disagrees with its transaction history.
	ErrBalanceMismatch = errors.New("balance does not match transaction history")
)

// ValidationError reports malformed entity input. It is always returned
// before any mutation takes place.
type ValidationError struct {
	Field  string // offending field, in its JSON spelling
	Reason string
	Err    error // optional cause
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// invalid is a shortcut to build a ValidationError.
func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// CorruptedStoreError reports a persisted ledger that exists but cannot be
// trusted. There is no automatic repair.
type CorruptedStoreError struct {
	Path string
	Err  error
}

func (e *CorruptedStoreError) Error() string {
	return fmt.Sprintf("corrupted ledger %q, fix or remove it: %v", e.Path, e.Err)
}

func (e *CorruptedStoreError) Unwrap() error { return e.Err }

// PersistenceError reports a failure to durably write the ledger.
type PersistenceError struct {
	Op   string // "write", "sync", "rename", ...
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not %s ledger %q: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
