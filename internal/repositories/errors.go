package repositories

import "errors"

// ErrNotFound is returned when a record does not exist. Implementations
// wrap it with context; callers test with errors.Is.
var ErrNotFound = errors.New("record not found")
