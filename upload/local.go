package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Local stores files under Dir, named <unix-millis>-<slugged original name>,
// and returns URLs relative to the site root.
type Local struct {
	Dir       string
	URLPrefix string
	now       func() time.Time
}

func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}
	return &Local{Dir: dir, URLPrefix: urlPrefix, now: time.Now}, nil
}

// imageExtensions maps sniffed content types to the extension the file is
// written with. The client's extension is never trusted.
var imageExtensions = map[string]string{
	"image/png":    ".png",
	"image/jpeg":   ".jpg",
	"image/gif":    ".gif",
	"image/webp":   ".webp",
	"image/bmp":    ".bmp",
	"image/x-icon": ".ico",
	"image/avif":   ".avif",
}

func fileName(stamp int64, original, ext string, attempt int) string {
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		base = "image"
	}
	if attempt > 0 {
		return fmt.Sprintf("%d-%s-%d%s", stamp, base, attempt, ext)
	}
	return fmt.Sprintf("%d-%s%s", stamp, base, ext)
}

func (l *Local) Store(ctx context.Context, f File) (Stored, error) {
	ext, ok := imageExtensions[f.ContentType]
	if !ok {
		return Stored{}, fmt.Errorf("%w: %q", ErrNotImage, f.ContentType)
	}
	stamp := l.now().UnixMilli()

	var (
		out  *os.File
		name string
		err  error
	)
	for attempt := 0; attempt < 10; attempt++ {
		name = fileName(stamp, f.Name, ext, attempt)
		out, err = os.OpenFile(filepath.Join(l.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, os.ErrExist) {
			break
		}
	}
	if err != nil {
		return Stored{}, fmt.Errorf("creating upload file: %w", err)
	}

	if _, err := io.Copy(out, f.Reader); err != nil {
		out.Close()
		os.Remove(out.Name())
		return Stored{}, fmt.Errorf("writing upload file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return Stored{}, err
	}

	return Stored{URL: path.Join(l.URLPrefix, name), Key: name}, nil
}

func (l *Local) Remove(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(l.Dir, filepath.Base(key)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
