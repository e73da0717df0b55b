package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// MaxFileSize caps one uploaded file.
const MaxFileSize = 10 << 20

// allowedTypes maps an intake field to the MIME types it accepts. Unknown
// fields accept nothing.
var allowedTypes = map[string][]string{
	"propertyImages": {"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"},
	"boq": {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"text/plain",
	},
	"drawings": {
		"application/pdf",
		"image/vnd.dwg",
		"image/vnd.dxf",
		"application/acad",
	},
}

func init() {
	// Generic document fields share the boq allow-list.
	allowedTypes["otherDocuments"] = allowedTypes["boq"]
	allowedTypes["bidDocuments"] = allowedTypes["boq"]
}

// LocalStore writes uploads to a directory on disk, one subdirectory per
// intake field, under random UUID filenames so originals cannot collide or
// traverse paths.
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if needed and returns the store.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &LocalStore{root: root}, nil
}

var _ ports.FileStore = (*LocalStore)(nil)

// Save validates the upload against the field allow-list and size limit,
// then writes it under a generated filename.
func (s *LocalStore) Save(ctx context.Context, up ports.Upload) (*ports.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if up.Size > MaxFileSize {
		return nil, domain.ErrFileTooLarge
	}
	if !typeAllowed(up.Field, up.MimeType) {
		return nil, domain.ErrUnsupportedFileType
	}

	dir := filepath.Join(s.root, up.Field)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create field dir: %w", err)
	}

	filename := uuid.NewString() + sanitizedExt(up.OriginalName)
	path := filepath.Join(dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	// LimitReader guards against a lying Content-Length.
	written, err := io.Copy(dst, io.LimitReader(up.Content, MaxFileSize+1))
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write upload: %w", err)
	}
	if written > MaxFileSize {
		_ = os.Remove(path)
		return nil, domain.ErrFileTooLarge
	}

	return &ports.StoredFile{
		Filename:     filename,
		OriginalName: up.OriginalName,
		Path:         "/uploads/" + up.Field + "/" + filename,
	}, nil
}

func typeAllowed(field, mimeType string) bool {
	for _, allowed := range allowedTypes[field] {
		if strings.EqualFold(mimeType, allowed) {
			return true
		}
	}
	return false
}

// sanitizedExt keeps only a plain extension from the client filename.
func sanitizedExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
