// Package kv provides the small string key-value stores that hold
// exercise history and filter preferences.
package kv

import (
	"errors"
	"io"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// IsNotFound reports whether err means the key is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Store is a synchronous string key-value store.
// Remove of an absent key is not an error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// StoreCloser is a Store that holds resources.
type StoreCloser interface {
	Store
	io.Closer
}
