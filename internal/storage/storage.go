// Package storage holds the binary object store used for synthesized
// audio. Production runs against a Supabase storage bucket; a local
// filesystem store covers development without credentials.
package storage

import (
	"context"
	"fmt"
)

// ObjectStore persists and retrieves binary blobs by key.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// UnavailableError means the object store is not configured or not
// reachable.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("object store unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// NotFoundError means no object exists under the requested key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string { return "object not found: " + e.Key }
