package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the given key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a store uniqueness constraint
	// (username, artist email) rejects a write.
	ErrDuplicate = errors.New("record already exists")
)
