package port

import (
	"context"
	"io"
)

// UploadInput carries one object upload.
type UploadInput struct {
	Bucket      string
	Key         string
	ContentType string
	Body        io.Reader
}

// UploadOutput reports where the object landed.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the cloud object store used for backup archival.
// Only what the archive and restore flows need.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}
