package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSUploader stores objects in a Google Cloud Storage bucket.
type GCSUploader struct {
	client *gstorage.Client
	bucket string
}

func NewGCSUploader(ctx context.Context) (*GCSUploader, error) {
	bucket := os.Getenv("GCS_BUCKET")
	credentialsPath := os.Getenv("CREDENTIALS_FILE_LOCATION")
	if bucket == "" || credentialsPath == "" {
		return nil, fmt.Errorf("missing GCS env vars (GCS_BUCKET, CREDENTIALS_FILE_LOCATION)")
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	client, err := gstorage.NewClient(ctx, option.WithAuthCredentialsFile(option.ServiceAccount, filepath.Join(wd, credentialsPath)))
	if err != nil {
		return nil, err
	}
	return &GCSUploader{client: client, bucket: bucket}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	o := u.client.Bucket(u.bucket).Object(objectName)
	// Abort on collision instead of overwriting.
	o = o.If(gstorage.Conditions{DoesNotExist: true})

	w := o.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload close: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectName), nil
}
