package ports

import (
	"context"
	"io"
)

// Upload is the raw intake of one uploaded file.
type Upload struct {
	Field        string // intake field name, selects the allow-list
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
}

// StoredFile is what the blob store hands back; core only ever consumes the
// returned path and metadata.
type StoredFile struct {
	Filename     string
	OriginalName string
	Path         string
}

// FileStore is the file intake boundary. Save validates the upload against
// the field's allow-list and the size limit before writing; implementations
// return domain.ErrFileTooLarge, domain.ErrTooManyFiles or
// domain.ErrUnsupportedFileType. Callers store files before mutating any
// entity so a rejected upload never partially commits.
type FileStore interface {
	Save(ctx context.Context, up Upload) (*StoredFile, error)
}
