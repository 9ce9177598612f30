package domain

import "errors"

var (
	// ErrWriteFailed marks a mutation whose envelope could not be persisted.
	// The in-memory aggregate is left at its previous value.
	ErrWriteFailed = errors.New("secure store write failed")

	// ErrNotFound is returned when an update or removal names an unknown id.
	ErrNotFound = errors.New("not found")

	// ErrClosed is returned by a store that has been torn down.
	ErrClosed = errors.New("secure store closed")
)
