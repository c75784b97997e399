package upload

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"
)

// PublicPrefix is the URL path the upload directory is served under. Stored
// image paths are relative to it, not to the directory on disk, so the
// directory can live anywhere without breaking saved rows.
const PublicPrefix = "uploads"

// Store writes uploaded product images under a single directory with
// collision-resistant names.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save persists a multipart file as <unix-ms>-<rand>-<original-name> and
// returns the public path stored on the product row.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.Intn(1e9), filepath.Base(file.Filename))
	dstPath := filepath.Join(s.Dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path.Join(PublicPrefix, name), nil
}
