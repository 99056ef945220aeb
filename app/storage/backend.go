package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Read when no object is stored under the key.
var ErrNotExist = errors.New("object does not exist")

// Backend abstracts flat object storage. Implemented by local FS and S3.
type Backend interface {
	// Read returns a reader for the object stored under key.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// Write stores data under key, replacing any previous object.
	Write(ctx context.Context, key string, data []byte) error

	// Has reports whether an object is stored under key.
	Has(ctx context.Context, key string) (bool, error)
}
