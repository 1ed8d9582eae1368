package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxImageSize = 10 << 20 // 10MB

// ImageStore saves uploaded post images to local disk under uuid names and
// returns the public path they are served from.
type ImageStore struct {
	dir    string // filesystem directory, e.g. web/uploads/posts
	prefix string // URL prefix, e.g. /media/posts
}

func NewImageStore(dir, prefix string) *ImageStore {
	return &ImageStore{dir: dir, prefix: prefix}
}

// Save validates and stores one uploaded image. Returns the URL path to
// store on the post.
func (s *ImageStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("not an image: %s", contentType)
	}
	if header.Size > maxImageSize {
		return "", fmt.Errorf("image too large: %d bytes", header.Size)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.prefix + "/" + name, nil
}
