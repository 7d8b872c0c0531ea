// Package storage keeps document bytes in an object store.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrDisabled is returned by every operation of a bucket that has no
	// backend configured.
	ErrDisabled = errors.New("object storage is not configured")
	// ErrNotFound is returned by Get for a missing key.
	ErrNotFound = errors.New("object not found")
)

// Bucket is a flat key/value object store.
type Bucket interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
