package storage

import "io"

// BlobStore is the archive for forwarded uploads.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
