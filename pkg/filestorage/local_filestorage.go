package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorageInterface is the contract for the upload backend. Files are
// grouped under a prefix (e.g. "documents", "files") and the returned path is
// relative to the storage root, suitable for serving under /uploads.
type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
}

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

// safeExt keeps the original extension only when it is short and plain ASCII
// alphanumeric; anything else is dropped rather than written to disk.
func safeExt(originalFileName string) string {
	ext := strings.ToLower(filepath.Ext(originalFileName))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	// The stored name is a fresh uuid; nothing client-controlled lands in the
	// path except a sanitized extension. Date subdirectories keep directory
	// sizes bounded.
	now := time.Now()
	uniqueFileName := now.Format("2006-01-02") + "-" + uuid.New().String() + safeExt(originalFileName)
	relativeDir := filepath.Join(prefix, now.Format("2006/01/02"))

	if err := os.MkdirAll(filepath.Join(s.basePath, relativeDir), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.basePath, relativeDir, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(relativeDir, uniqueFileName)), nil
}

func (s *LocalFileStorage) Delete(filePath string) error {
	// Accept either the stored relative path or the public URL form
	// "/uploads/prefix/2024/08/21/file.pdf".
	relativePath := strings.TrimPrefix(strings.TrimPrefix(filePath, "/uploads/"), "/")

	// Rooting before Clean keeps ".." segments from resolving outside the
	// storage directory.
	fullPath := filepath.Join(s.basePath, filepath.Clean("/"+relativePath))

	// A file already gone counts as deleted.
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(fullPath)
}
