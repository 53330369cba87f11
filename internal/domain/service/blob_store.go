package service

import "context"

// BlobStore stores named binary payloads and returns a URL that resolves to them.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte) (url string, err error)
}
