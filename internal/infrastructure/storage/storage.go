package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/chaosdating/chaos-dating/internal/config"
	"github.com/google/uuid"
)

// PictureStore saves uploaded profile pictures on local disk. Stored names
// are random, so a replaced picture never collides with the old one.
type PictureStore struct {
	dir string
}

func NewPictureStore(cfg *config.StorageConfig) (*PictureStore, error) {
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &PictureStore{dir: cfg.Path}, nil
}

// Save writes the uploaded file and returns the stored file name, to be
// served under the media route.
func (s *PictureStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported picture type %q", ext)
	}

	name := uuid.NewString() + ext

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create picture file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write picture file: %w", err)
	}
	return name, nil
}
