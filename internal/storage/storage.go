// Package storage holds the object-store boundary used for avatar files.
package storage

import (
	"context"
	"io"
)

// Store is the object-store boundary: bytes go in under a caller-chosen key
// and come back out at a stable public URL.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
	PublicURL(key string) string
}
