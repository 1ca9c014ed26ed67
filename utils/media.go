package utils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxFileSize is the per-file upload limit (5MB).
const MaxFileSize = 5 << 20

// multipart form memory threshold; larger parts spill to temp files.
const maxFormMemory = 32 << 20

var allowedExtensions = map[string]string{
	"image/png":  "png",
	"image/jpg":  "jpg",
	"image/jpeg": "jpeg",
}

// UploadError describes a rejected upload, carrying the multipart field name
// so it can be echoed to the client.
type UploadError struct {
	Field   string
	Code    string
	Message string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s{%s}", e.Message, e.Field)
}

// MediaStore saves uploaded images on local disk and serves them back by
// absolute URL.
type MediaStore struct {
	// Dir is the on-disk upload directory, e.g. "public/uploads".
	Dir string
}

// NewMediaStore creates the upload directory if needed.
func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &MediaStore{Dir: dir}, nil
}

// SaveImage stores a single image from the named multipart field and returns
// its public URL. A missing field yields ErrNoFile.
func (m *MediaStore) SaveImage(r *http.Request, field string) (string, error) {
	files, err := m.formFiles(r, field)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", ErrNoFile
	}
	return m.saveFile(r, field, files[0])
}

// SaveImages stores up to max images from the named multipart field and
// returns their public URLs. An empty field is not an error.
func (m *MediaStore) SaveImages(r *http.Request, field string, max int) ([]string, error) {
	files, err := m.formFiles(r, field)
	if err != nil {
		return nil, err
	}
	if len(files) > max {
		return nil, &UploadError{
			Field:   field,
			Code:    "LIMIT_FILE_COUNT",
			Message: fmt.Sprintf("Too many files, at most %d allowed", max),
		}
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := m.saveFile(r, field, fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// ErrNoFile indicates a required upload field was absent.
var ErrNoFile = errors.New("no file found")

// DeleteImages removes the files behind the given public URLs. When
// tolerateMissing is set, already-absent files are logged and skipped; any
// other I/O error aborts the whole operation.
func (m *MediaStore) DeleteImages(urls []string, tolerateMissing bool) error {
	for _, u := range urls {
		if u == "" {
			continue
		}
		path := filepath.Join(m.Dir, filepath.Base(u))
		if err := os.Remove(path); err != nil {
			if tolerateMissing && errors.Is(err, fs.ErrNotExist) {
				log.Printf("image already gone, continuing: %s", path)
				continue
			}
			return err
		}
	}
	return nil
}

func (m *MediaStore) formFiles(r *http.Request, field string) ([]*multipart.FileHeader, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, &UploadError{Field: field, Code: "LIMIT_UNEXPECTED_FILE", Message: err.Error()}
		}
	}
	return r.MultipartForm.File[field], nil
}

func (m *MediaStore) saveFile(r *http.Request, field string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", &UploadError{Field: field, Code: "LIMIT_FILE_SIZE", Message: "File too large"}
	}
	contentType := fh.Header.Get("Content-Type")
	ext, ok := allowedExtensions[contentType]
	if !ok {
		return "", &UploadError{
			Field:   field,
			Code:    "LIMIT_UNEXPECTED_FILE",
			Message: fmt.Sprintf("Invalid image type, %s is not allowed", contentType),
		}
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%s-%s.%s", base, uuid.NewString(), ext)

	dst, err := os.Create(filepath.Join(m.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return m.publicURL(r, name), nil
}

// publicURL builds the absolute URL clients use to fetch the stored file.
func (m *MediaStore) publicURL(r *http.Request, filename string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, r.Host, m.Dir, filename)
}
