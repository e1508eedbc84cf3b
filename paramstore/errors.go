package paramstore

import "errors"

// ErrNotFound is returned when the parameter does not exist in the store.
var ErrNotFound = errors.New("parameter not found")
