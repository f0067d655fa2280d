package models

import "errors"

// Error taxonomy shared by services and handlers. Services wrap these with
// fmt.Errorf("...: %w", ...) so handlers can map them with errors.Is.
var (
	// ErrNotFound: a referenced product or ingredient does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable: the corpus store call failed and no degraded
	// alternative was available (detail lookups, not list searches).
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidInput: malformed request input, rejected before any store
	// round trip.
	ErrInvalidInput = errors.New("invalid input")
)
