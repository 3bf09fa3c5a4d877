// Package apperr defines the error taxonomy shared by services and handlers.
//
// Store and cache failures are wrapped with one of the sentinels below so
// callers can branch with errors.Is without seeing raw driver errors.
package apperr

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks requests rejected before any I/O.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks an authoritative lookup that found nothing.
	ErrNotFound = errors.New("not found")
	// ErrTimeout marks a deadline breach on a store or cache call.
	ErrTimeout = errors.New("timeout")
	// ErrPersistence marks a write the underlying store rejected.
	ErrPersistence = errors.New("persistence failure")
	// ErrLookup marks an authoritative read that failed for reasons other
	// than absence (store unreachable, driver error).
	ErrLookup = errors.New("lookup failure")
)

// Invalid returns an ErrInvalidArgument with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Persistence wraps a store write error, keeping the cause in the chain.
// A breached deadline is reported as ErrTimeout instead.
func Persistence(op, id string, err error) error {
	return wrap(ErrPersistence, op, id, err)
}

// Lookup wraps a store read error, keeping the cause in the chain.
// A breached deadline is reported as ErrTimeout instead.
func Lookup(op, id string, err error) error {
	return wrap(ErrLookup, op, id, err)
}

// NotFound reports that op found no entity with the given id.
func NotFound(op, id string) error {
	return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func wrap(kind error, op, id string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		kind = ErrTimeout
	}
	return fmt.Errorf("%s %s: %w: %w", op, id, kind, err)
}
