package upload

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrNoFile   = errors.New("no file uploaded")
	ErrNotImage = errors.New("uploaded file is not an image")
)

// File is one uploaded file as read from a request.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Stored describes where an adapter put a file. Key is what Remove needs.
type Stored struct {
	URL string
	Key string
}

// Adapter turns an uploaded file into a publicly resolvable URL.
type Adapter interface {
	Store(ctx context.Context, f File) (Stored, error)
	Remove(ctx context.Context, key string) error
}

// FromRequest reads the file in field of a multipart request. A missing file
// is ErrNoFile; the returned close func must be called once the file is stored.
func FromRequest(r *http.Request, field string) (*File, func(), error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, ErrNoFile
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading upload %q: %w", field, err)
	}
	br := bufio.NewReaderSize(file, 512)
	head, _ := br.Peek(512)
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		file.Close()
		return nil, nil, ErrNotImage
	}

	return &File{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Reader:      br,
	}, func() { file.Close() }, nil
}
