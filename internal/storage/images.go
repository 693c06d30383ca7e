// Package storage provides the upload collaborator that persists post images
// and hands back the public URL that gets stored on the post row.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageStore stores an uploaded file and returns its public URL. The URL is
// the only thing the rest of the system persists.
type ImageStore interface {
	Save(ctx context.Context, prefix string, file *multipart.FileHeader) (string, error)
}

// LocalImageStore writes uploads to a directory served under /uploads.
type LocalImageStore struct {
	Dir     string
	BaseURL string
}

// NewLocalImageStore creates the directory if needed and returns the store.
func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalImageStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Save stores the file under a timestamped, collision-free name. The original
// filename only contributes its extension; everything else is generated.
func (s *LocalImageStore) Save(_ context.Context, prefix string, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".bin"
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], ext)
	if prefix != "" {
		name = prefix + "_" + name
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return s.BaseURL + "/uploads/" + name, nil
}
