package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// BlobStore stores uploaded images and returns a public URL for them
type BlobStore interface {
	UploadImage(ctx context.Context, r io.Reader, contentType string) (string, error)
}

var extensions = map[string]string{
	"image/jpeg": ".jpeg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
}

// IsSupportedImage reports whether the content type is an accepted image type
func IsSupportedImage(contentType string) bool {
	_, ok := extensions[contentType]
	return ok
}

// BucketStore implements BlobStore over a cloud storage bucket
type BucketStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewBucketStore creates a BucketStore for the named bucket
func NewBucketStore(bucket *gcs.BucketHandle, bucketName string) *BucketStore {
	return &BucketStore{bucket: bucket, bucketName: bucketName}
}

// UploadImage writes the image to the bucket under a random name and
// returns its public download URL
func (s *BucketStore) UploadImage(ctx context.Context, r io.Reader, contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
	name := uuid.NewString() + ext

	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", s.bucketName, name), nil
}
