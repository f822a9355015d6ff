// Package kv defines the persistent key-value store the ledger writes to.
//
// The store is string keyed and string valued, like browser local storage.
// Backends live in sub-packages (memory, file) and in internal/storage
// (sqlite).
package kv

import (
	"context"
	"errors"
)

// ErrEmptyKey is returned when a store is asked for the empty key.
var ErrEmptyKey = errors.New("empty key")

// Ports for persistent key-value backends.
type (
	Getter interface {
		// Get returns the value stored under key; ok is false when absent.
		Get(ctx context.Context, key string) (value string, ok bool, err error)
	}

	Setter interface {
		// Set stores value under key, replacing any previous value.
		Set(ctx context.Context, key, value string) error
	}

	Store interface {
		Getter
		Setter
	}
)
