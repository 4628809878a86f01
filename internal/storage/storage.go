package storage

import (
	"context"
	"io"
)

// Uploader defines common upload operations across backends.
type Uploader interface {
	Save(ctx context.Context, originalName, contentType string, r io.Reader) (storedName string, err error)
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
	Delete(ctx context.Context, storedName string) error
	Dir() string
}

// MaxUploadSize caps a single uploaded file at 50 MB.
const MaxUploadSize = 50 << 20

// allowedContentTypes mirrors the upload constraint: pdf, images, video.
var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"video/mp4":       true,
	"video/avi":       true,
	"video/quicktime": true,
}

// ContentTypeAllowed reports whether the MIME type passes the upload filter.
func ContentTypeAllowed(contentType string) bool {
	return allowedContentTypes[contentType]
}
