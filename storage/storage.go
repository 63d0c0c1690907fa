package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Uploader is the object-storage boundary. Implementations must refuse to
// overwrite an existing object: a path collision surfaces as an error, never
// a silent replacement.
type Uploader interface {
	Upload(ctx context.Context, objectName, contentType string, body io.Reader) (publicURL string, err error)
}

// NewUploaderFromEnv picks the storage backend from STORAGE_BACKEND
// ("r2" or "gcs", default "r2").
func NewUploaderFromEnv(ctx context.Context) (Uploader, error) {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_BACKEND")))
	switch backend {
	case "", "r2":
		return NewR2Uploader()
	case "gcs":
		return NewGCSUploader(ctx)
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (want r2 or gcs)", backend)
	}
}
