package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "artfeeds/internal/errors"
)

// DiskUploader stores uploaded files on the local filesystem. Stored names are
// prefixed with a millisecond timestamp so repeated uploads of the same file
// never collide.
type DiskUploader struct {
	dir string
}

var _ Uploader = (*DiskUploader)(nil)

// NewDiskUploader creates the upload directory if needed and returns an uploader.
func NewDiskUploader(dir string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskUploader{dir: dir}, nil
}

// Save writes the stream to disk under a unique name and returns that name.
// Rejects disallowed content types and anything larger than MaxUploadSize.
func (d *DiskUploader) Save(ctx context.Context, originalName, contentType string, r io.Reader) (string, error) {
	if !ContentTypeAllowed(contentType) {
		return "", apperrors.ErrUnsupportedFileType
	}

	storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeName(originalName))
	path := filepath.Join(d.dir, storedName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if written > MaxUploadSize {
		os.Remove(path)
		return "", fmt.Errorf("file exceeds %d bytes", MaxUploadSize)
	}

	return storedName, nil
}

// Open returns a reader over a stored file.
func (d *DiskUploader) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.dir, filepath.Base(storedName)))
}

// Delete removes a stored file.
func (d *DiskUploader) Delete(ctx context.Context, storedName string) error {
	return os.Remove(filepath.Join(d.dir, filepath.Base(storedName)))
}

// Dir returns the directory files are stored in, for static serving.
func (d *DiskUploader) Dir() string {
	return d.dir
}

// sanitizeName strips any path components and whitespace from a client name.
func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "upload"
	}
	return strings.ReplaceAll(name, " ", "_")
}
