package ports

import (
	"context"
	"io"
)

// BlobStore abstracts the object store that holds proof-of-delivery photos
// and signatures. The core only ever handles the opaque reference returned by
// Put; fetching and serving the blob is an adapter concern.
type BlobStore interface {
	// Put uploads a blob and returns a stable reference to it.
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}
