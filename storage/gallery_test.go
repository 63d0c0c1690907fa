package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/katanastore/backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUploader records uploads and can be told to fail at a given call.
type fakeUploader struct {
	objects []string
	failAt  int // 1-based call index that fails; 0 means never
}

func (f *fakeUploader) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	call := len(f.objects) + 1
	if f.failAt != 0 && call == f.failAt {
		return "", errors.New("bucket rejected upload")
	}
	f.objects = append(f.objects, objectName)
	return "https://cdn.test/" + objectName, nil
}

func stagedFiles(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, n := range names {
		fw, err := w.CreateFormFile("images", n)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-bytes-" + n))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["images"]
}

func TestAssembleGalleryReplacesExisting(t *testing.T) {
	up := &fakeUploader{}
	existing := []string{"https://cdn.test/old-x.jpg", "https://cdn.test/old-y.jpg"}

	urls, err := storage.AssembleGallery(context.Background(), up, "katana", stagedFiles(t, "a.jpg", "b.png"), existing)
	require.NoError(t, err)

	// New uploads, in upload order, wholesale-replace the old gallery.
	require.Len(t, urls, 2)
	assert.NotContains(t, urls, existing[0])
	assert.NotContains(t, urls, existing[1])
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
	assert.True(t, strings.HasSuffix(urls[1], ".png"))
	for _, u := range urls {
		assert.Contains(t, u, "-katana-")
	}
}

func TestAssembleGalleryKeepsExistingWhenNothingStaged(t *testing.T) {
	up := &fakeUploader{}
	existing := []string{"https://cdn.test/x.jpg", "https://cdn.test/y.jpg"}

	urls, err := storage.AssembleGallery(context.Background(), up, "katana", nil, existing)
	require.NoError(t, err)
	assert.Equal(t, existing, urls)
	assert.Empty(t, up.objects, "nothing should be uploaded")
}

func TestAssembleGalleryAbortsOnFirstFailure(t *testing.T) {
	up := &fakeUploader{failAt: 2}

	urls, err := storage.AssembleGallery(context.Background(), up, "katana", stagedFiles(t, "a.jpg", "b.jpg", "c.jpg"), nil)
	require.Error(t, err)
	assert.Nil(t, urls)
	// The first upload went through (and stays orphaned); the third was
	// never attempted.
	assert.Len(t, up.objects, 1)
}

func TestAssembleGalleryDefaultsExtension(t *testing.T) {
	up := &fakeUploader{}
	urls, err := storage.AssembleGallery(context.Background(), up, "katana", stagedFiles(t, "photo"), nil)
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
}

func TestObjectNameIsUnique(t *testing.T) {
	a := storage.ObjectName("katana", "jpg")
	b := storage.ObjectName("katana", "jpg")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "products/"))
}
