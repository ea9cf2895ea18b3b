package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a conditional update finds the record
	// changed since it was read (CAS failure or a lost transition race).
	ErrConflict = errors.New("record changed concurrently")
)
