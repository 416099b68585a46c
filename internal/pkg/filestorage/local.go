package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/campuslink/clubnet/internal/pkg/logger"
)

// LocalStorage stores uploaded files on the local filesystem under a
// single base directory. Stored names are random UUIDs so uploads can
// never collide or traverse outside the base.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (s *LocalStorage) SaveFile(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	name := uuid.New().String() + ext
	fullPath := filepath.Join(s.basePath, name)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}

func (s *LocalStorage) DeleteFile(path string) error {
	if path == "" {
		return nil
	}
	fullPath := filepath.Join(s.basePath, filepath.Base(path))
	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to delete stored file")
		return err
	}
	return nil
}

func (s *LocalStorage) GetFullPath(path string) string {
	return filepath.Join(s.basePath, filepath.Base(path))
}
