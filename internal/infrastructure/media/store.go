package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/yourplaces/backend/pkg/helpers"
)

// Store keeps uploaded images in a GCS bucket and hands back public URLs
// as the opaque media references the rest of the system carries around.
type Store struct {
	client *storage.Client
	bucket string
}

func NewStore(client *storage.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// Upload stores r under folder with a fresh object name and returns the
// public URL.
func (s *Store) Upload(ctx context.Context, folder string, r io.Reader, filename, contentType string) (string, error) {
	if s.client == nil || s.bucket == "" {
		return "", errors.New("media store not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join(folder, id+ext))
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}

// Delete removes the object a reference points at. References that do not
// belong to this bucket are rejected.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if s.client == nil || s.bucket == "" {
		return errors.New("media store not configured")
	}
	objectPath, ok := s.objectPath(ref)
	if !ok {
		return errors.New("media reference outside configured bucket")
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, objectPath)
}

func (s *Store) objectPath(ref string) (string, bool) {
	prefix := helpers.PublicURL(s.bucket, "")
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	return strings.TrimPrefix(ref, prefix), true
}
