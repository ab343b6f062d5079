package chat

import (
	"errors"
	"fmt"

	"github.com/lumiere-weddings/concierge/internal/storage"
)

// ErrUnauthenticated means the caller presented no valid identity.
var ErrUnauthenticated = errors.New("caller not authenticated")

// ValidationError is a bad request: empty message text or similarly unusable
// input. Malformed tool payloads are not validation errors at this level;
// they degrade inside the adapter.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// PersistenceError is a failed datastore write, tagged with which write
// point failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsAuthorization reports whether err is an ownership or identity failure.
// These surface as explicit HTTP errors, never as a fallback reply.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, storage.ErrNotThreadOwner)
}
