package upload

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "x"))
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/admin/news/add", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestFromRequest(t *testing.T) {
	f, done, err := FromRequest(multipartRequest(t, "imageUrl", "Solar Farm.PNG", pngBytes), "imageUrl")
	require.NoError(t, err)
	defer done()
	assert.Equal(t, "Solar Farm.PNG", f.Name)
	assert.Equal(t, "image/png", f.ContentType)

	data, err := io.ReadAll(f.Reader)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestFromRequestMissingFile(t *testing.T) {
	_, _, err := FromRequest(multipartRequest(t, "", "", nil), "imageUrl")
	assert.ErrorIs(t, err, ErrNoFile)

	form := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("title=x"))
	form.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, _, err = FromRequest(form, "imageUrl")
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestFromRequestRejectsNonImage(t *testing.T) {
	_, _, err := FromRequest(multipartRequest(t, "imageUrl", "notes.txt", []byte("hello there")), "imageUrl")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLocalStoreAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l, err := NewLocal(dir, "/uploads")
	require.NoError(t, err)
	l.now = func() time.Time { return time.UnixMilli(1700000000123) }

	stored, err := l.Store(context.Background(), File{Name: "Solar Farm.PNG", ContentType: "image/png", Reader: bytes.NewReader(pngBytes)})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000123-solar-farm.png", stored.URL)
	assert.Equal(t, "1700000000123-solar-farm.png", stored.Key)

	data, err := os.ReadFile(filepath.Join(dir, stored.Key))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	again, err := l.Store(context.Background(), File{Name: "Solar Farm.PNG", ContentType: "image/png", Reader: bytes.NewReader(pngBytes)})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000123-solar-farm-1.png", again.URL)

	require.NoError(t, l.Remove(context.Background(), stored.Key))
	_, err = os.Stat(filepath.Join(dir, stored.Key))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, l.Remove(context.Background(), stored.Key))
}

func TestLocalRemoveStaysInDir(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(root, "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	l, err := NewLocal(filepath.Join(root, "uploads"), "/uploads")
	require.NoError(t, err)
	require.NoError(t, l.Remove(context.Background(), "../keep.txt"))

	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestFileNameFallback(t *testing.T) {
	assert.Equal(t, "5-image.jpg", fileName(5, "???.JPG", ".jpg", 0))
}

func TestLocalStoreUsesSniffedExtension(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l, err := NewLocal(dir, "/uploads")
	require.NoError(t, err)
	l.now = func() time.Time { return time.UnixMilli(42) }

	body := append(append([]byte{}, pngBytes...), []byte("<script>alert(1)</script>")...)
	f, done, err := FromRequest(multipartRequest(t, "imageUrl", "evil.html", body), "imageUrl")
	require.NoError(t, err)
	defer done()

	stored, err := l.Store(context.Background(), *f)
	require.NoError(t, err)
	assert.Equal(t, "42-evil.png", stored.Key)
	assert.Equal(t, "/uploads/42-evil.png", stored.URL)

	_, err = l.Store(context.Background(), File{Name: "page.html", ContentType: "text/html", Reader: bytes.NewReader(body)})
	assert.ErrorIs(t, err, ErrNotImage)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNewCloudinaryRequiresCredentials(t *testing.T) {
	_, err := NewCloudinary("", "key", "secret", "sustainwire")
	assert.Error(t, err)

	c, err := NewCloudinary("demo", "key", "secret", "sustainwire")
	require.NoError(t, err)
	assert.Equal(t, "sustainwire", c.folder)
}
