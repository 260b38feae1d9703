// Package filex holds the small file helpers used by the client: creating the
// state directory and loading images for upload.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrTooLarge = errors.New("file too large")
	ErrNotImage = errors.New("file is not an image")
)

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// Image is a file read by ReadImage.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadImage loads the image at path, rejecting files larger than maxSize and
// files whose sniffed content type is not image/*.
func ReadImage(path string, maxSize int64) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	if fi.Size() > maxSize {
		return nil, fmt.Errorf("%s is %d bytes, limit %d: %w", path, fi.Size(), maxSize, ErrTooLarge)
	}

	// the stat size may be stale, so cap the read as well
	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	ct, err := SniffImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Image{Name: filepath.Base(path), ContentType: ct, Data: data}, nil
}

// SniffImage detects the content type of data from its leading bytes and
// returns it when it is an image/* type.
func SniffImage(data []byte) (string, error) {
	ct := mimetype.Detect(data).String()
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("content type %s: %w", ct, ErrNotImage)
	}
	return ct, nil
}
