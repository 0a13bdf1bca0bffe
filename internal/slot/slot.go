// Package slot provides named durable key-value entries that survive across
// sessions. Stores serialize their full state into a slot after every
// mutation and read it back exactly once at hydration.
package slot

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no value has ever been written under
// the key. Callers treat it as "no prior state", never as a failure.
var ErrNotFound = errors.New("slot not found")

type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}
