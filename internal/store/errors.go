package store

import "errors"

// Domain errors for the store package.
var (
	// ErrKeyNotFound is returned by a KV backend when a key has no value.
	// The Store treats it as an empty record rather than a failure.
	ErrKeyNotFound = errors.New("store: key not found")

	// ErrPersistence wraps every backend read or write failure surfaced by
	// the Store.
	ErrPersistence = errors.New("store: persistence failed")
)
