package repositories

import "errors"

// Storage-level sentinel errors, translated by the services into their own
// taxonomy.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
