// Package storage holds question illustrations. Bank files reference
// images by key; the store serves them to clients taking a test.
package storage

import "io"

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
