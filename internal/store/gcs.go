// Google Cloud Storage implementation of the BlobStore port.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCS adapts a Cloud Storage bucket to the BlobStore port. Uploaded
// objects are addressed through the public storage.googleapis.com URL, so
// the bucket is expected to grant public read on the uploaded paths.
type GCS struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewGCS creates the blob-store adapter for the given bucket.
func NewGCS(ctx context.Context, bucketName string) (*GCS, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("bucketName must be provided to create a storage client")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{bucket: client.Bucket(bucketName), bucketName: bucketName}, nil
}

// Upload implements BlobStore. The write is finalized by Close; a failed
// Close means the object was not committed.
func (g *GCS) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	w := g.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", path, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucketName, path), nil
}
