package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// GCSUploader pushes ledger documents to a GCS location.
// It assumes Application Default Credentials are configured (gcloud auth application-default login).
type GCSUploader struct {
	loc       Location
	newWriter func(ctx context.Context, bucket, object string) io.WriteCloser
	close     func() error
}

// NewGCSUploader creates a storage client uploading to loc.
func NewGCSUploader(ctx context.Context, loc Location) (*GCSUploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSUploader{
		loc: loc,
		newWriter: func(ctx context.Context, bucket, object string) io.WriteCloser {
			w := client.Bucket(bucket).Object(object).NewWriter(ctx)
			w.ContentType = "application/json"
			return w
		},
		close: client.Close,
	}, nil
}

// Close releases the storage client.
func (u *GCSUploader) Close() error { return u.close() }

// Upload writes doc as the backup taken at, and returns its gs:// URI.
func (u *GCSUploader) Upload(ctx context.Context, at time.Time, doc []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	object := u.loc.Object(at)
	w := u.newWriter(ctx, u.loc.Bucket, object)
	if _, err := io.Copy(w, bytes.NewReader(doc)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy ledger to GCS writer: %w", err)
	}
	// Close finalizes the upload.
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload of %s: %w", u.loc.URI(object), err)
	}
	return u.loc.URI(object), nil
}
