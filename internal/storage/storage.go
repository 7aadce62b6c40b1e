package storage

import (
	"context"
	"io"
)

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket        string
	KeyPrefix     string
	Region        string
	PublicBaseURL string
	ContentType   string
}

// Service stores avatar attachments in remote object storage and hands
// back a stable, publicly resolvable URL.
type Service interface {
	UploadAvatar(ctx context.Context, body io.Reader, filename string, opts UploadOptions) (string, error)
	DeleteByURL(ctx context.Context, rawURL string, opts UploadOptions) error
}
