package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown extractor or strategy name.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrStoreUnavailable indicates no chunk store is configured.
	// Persistence-dependent commands are disabled without one.
	ErrStoreUnavailable = errors.New("chunk store unavailable")
)
