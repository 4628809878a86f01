package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "artfeeds/internal/errors"
)

func TestDiskUploader_Save(t *testing.T) {
	dir := t.TempDir()
	uploader, err := NewDiskUploader(dir)
	assert.NoError(t, err)

	t.Run("stores the stream under a unique name", func(t *testing.T) {
		name, err := uploader.Save(context.Background(), "photo.jpg", "image/jpeg", strings.NewReader("fake-jpeg-bytes"))
		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, "-photo.jpg"))

		data, err := os.ReadFile(filepath.Join(dir, name))
		assert.NoError(t, err)
		assert.Equal(t, "fake-jpeg-bytes", string(data))
	})

	t.Run("rejects disallowed content types", func(t *testing.T) {
		name, err := uploader.Save(context.Background(), "script.sh", "application/x-sh", strings.NewReader("#!/bin/sh"))
		assert.Equal(t, apperrors.ErrUnsupportedFileType, err)
		assert.Empty(t, name)
	})

	t.Run("strips path components from client names", func(t *testing.T) {
		name, err := uploader.Save(context.Background(), "../../etc/passwd.png", "image/png", strings.NewReader("png"))
		assert.NoError(t, err)
		assert.NotContains(t, name, "/")
		assert.True(t, strings.HasSuffix(name, "-passwd.png"))
	})

	t.Run("replaces spaces in client names", func(t *testing.T) {
		name, err := uploader.Save(context.Background(), "my holiday photo.png", "image/png", strings.NewReader("png"))
		assert.NoError(t, err)
		assert.NotContains(t, name, " ")
	})
}

func TestDiskUploader_OpenAndDelete(t *testing.T) {
	dir := t.TempDir()
	uploader, err := NewDiskUploader(dir)
	assert.NoError(t, err)

	name, err := uploader.Save(context.Background(), "doc.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	assert.NoError(t, err)

	rc, err := uploader.Open(context.Background(), name)
	assert.NoError(t, err)
	data, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4", string(data))

	assert.NoError(t, uploader.Delete(context.Background(), name))
	_, err = uploader.Open(context.Background(), name)
	assert.Error(t, err)
}

func TestContentTypeAllowed(t *testing.T) {
	allowed := []string{"application/pdf", "image/jpeg", "image/png", "video/mp4", "video/avi", "video/quicktime"}
	for _, ct := range allowed {
		assert.True(t, ContentTypeAllowed(ct), ct)
	}

	for _, ct := range []string{"text/html", "application/octet-stream", "image/gif", ""} {
		assert.False(t, ContentTypeAllowed(ct), ct)
	}
}
