package handler

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SambridhiGhimire/Architech-bidding/internal/api/metrics"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// maxFilesPerRequest caps the total file parts across all fields of one
// request.
const maxFilesPerRequest = 10

// saveUploads stores every file part of the listed fields and returns the
// resulting references grouped by field. Files are persisted before any
// entity mutation; a rejected file fails the whole request, so callers never
// see a partially attached upload set.
func saveUploads(c echo.Context, store ports.FileStore, fields ...string) (map[string][]domain.FileRef, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart request; nothing to store.
		return map[string][]domain.FileRef{}, nil
	}

	total := 0
	for _, field := range fields {
		total += len(form.File[field])
	}
	if total > maxFilesPerRequest {
		metrics.UploadsRejectedTotal.WithLabelValues("too_many").Inc()
		return nil, domain.ErrTooManyFiles
	}

	out := make(map[string][]domain.FileRef, len(fields))
	for _, field := range fields {
		for _, fh := range form.File[field] {
			ref, err := saveOne(c, store, field, fh)
			if err != nil {
				countRejection(err)
				return nil, err
			}
			out[field] = append(out[field], *ref)
		}
	}
	return out, nil
}

func saveOne(c echo.Context, store ports.FileStore, field string, fh *multipart.FileHeader) (*domain.FileRef, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	stored, err := store.Save(c.Request().Context(), ports.Upload{
		Field:        field,
		OriginalName: fh.Filename,
		MimeType:     fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		Content:      src,
	})
	if err != nil {
		return nil, err
	}

	return &domain.FileRef{
		Filename:     stored.Filename,
		OriginalName: stored.OriginalName,
		Path:         stored.Path,
		UploadedAt:   time.Now().UTC(),
	}, nil
}

func countRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
	case errors.Is(err, domain.ErrUnsupportedFileType):
		metrics.UploadsRejectedTotal.WithLabelValues("unsupported_type").Inc()
	}
}
