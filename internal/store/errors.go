package store

import "errors"

// ErrNotFound is returned by a Backend when a key has no value.
var ErrNotFound = errors.New("key not found")
