package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
)

// GCS stores uploads as objects in a Cloud Storage bucket. Credentials come
// from the environment (GOOGLE_APPLICATION_CREDENTIALS or the metadata server).
type GCS struct {
	client *gcs.Client
	bucket string
}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	name := objectName(folder, filename)

	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = mime.TypeByExtension(filepath.Ext(name))
	if w.ContentType == "" {
		w.ContentType = "application/octet-stream"
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to copy upload to GCS object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer for %s: %w", name, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, name), nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
