package repository

import "errors"

var (
	// ErrNotFound indicates no row matched the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness constraint rejected the write.
	ErrDuplicate = errors.New("duplicate")
)
