// Package storage holds the backends documents are persisted in. A backend is
// a flat namespace of keys; keys are document names.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is returned by Get and Delete when the key is absent.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is the backend a document store reads from and writes to.
// Implementations do not lock: concurrent writers to one key race and the last
// one wins.
type Storage interface {
	// List returns every object currently stored.
	List(ctx context.Context) ([]ObjectInfo, error)
	// Put replaces the object under key with the content of r. Readers never
	// observe a partially written object.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Touch creates an empty object under key unless one already exists.
	Touch(ctx context.Context, key string) error
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
}
