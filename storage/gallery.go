package storage

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssembleGallery produces the image list persisted for a product.
//
// When staged files are present they are uploaded one at a time, in form
// order, and the resulting URLs wholesale-replace the existing gallery. The
// first upload failure aborts the rest; objects uploaded before the failure
// are left behind (no cleanup pass). With no staged files the existing URLs
// are returned untouched.
func AssembleGallery(
	ctx context.Context,
	up Uploader,
	productSlug string,
	staged []*multipart.FileHeader,
	existing []string,
) ([]string, error) {
	if len(staged) == 0 {
		return existing, nil
	}

	urls := make([]string, 0, len(staged))
	for _, fh := range staged {
		url, err := uploadOne(ctx, up, productSlug, fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func uploadOne(ctx context.Context, up Uploader, productSlug string, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if ext == "" {
		ext = "jpg"
	}

	objectName := ObjectName(productSlug, ext)

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension("." + ext)
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	url, err := up.Upload(ctx, objectName, ct, f)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", fh.Filename, err)
	}
	return url, nil
}

// ObjectName builds a unique storage path from the upload timestamp, the
// product slug, and a random token. Collisions are improbable, and the
// uploaders reject them rather than overwrite.
func ObjectName(productSlug, ext string) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("products/%d-%s-%s.%s", time.Now().UnixMilli(), productSlug, token, ext)
}
