// AngelaMos | 2026
// handler.go

package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/config"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

// multipartOverhead covers boundaries and part headers on top of the file.
const multipartOverhead = 64 << 10

type Response struct {
	URL string `json:"url"`
}

type Handler struct {
	store     *Store
	processor *Processor
	guard     *auth.Guard
	maxSize   int64
}

func NewHandler(
	cfg config.UploadConfig,
	store *Store,
	guard *auth.Guard,
) *Handler {
	return &Handler{
		store:     store,
		processor: NewProcessor(cfg.AllowedTypes, cfg.MaxDimension),
		guard:     guard,
		maxSize:   cfg.MaxSize,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.Upload)
}

// Upload accepts a single image in the multipart field "file".
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.guard.Require(w, r); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.reject(w, r, ErrTooLarge)
			return
		}
		core.BadRequest(w, "invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll() //nolint:errcheck // temp files
	}()

	data, err := h.read(r)
	if err != nil {
		h.reject(w, r, err)
		return
	}

	img, err := h.processor.Process(data)
	if err != nil {
		h.reject(w, r, err)
		return
	}

	url, err := h.store.Save(img.Data, img.Ext)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "image uploaded",
		"url", url,
		"content_type", img.ContentType,
		"bytes", len(img.Data),
		"width", img.Width,
		"height", img.Height,
	)

	core.Created(w, Response{URL: url})
}

func (h *Handler) read(r *http.Request) ([]byte, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, ErrMissingFile
	}
	defer func() {
		_ = file.Close() //nolint:errcheck // read-only
	}()

	if header.Size > h.maxSize {
		return nil, ErrTooLarge
	}

	if declared := header.Header.Get("Content-Type"); !h.processor.Allows(declared) {
		return nil, fmt.Errorf("%w: declared %s", ErrUnsupportedType, declared)
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > h.maxSize {
		return nil, ErrTooLarge
	}

	return data, nil
}

func (h *Handler) reject(
	w http.ResponseWriter,
	r *http.Request,
	err error,
) {
	switch {
	case errors.Is(err, ErrMissingFile):
		core.BadRequest(w, "File is required")
	case errors.Is(err, ErrTooLarge):
		core.BadRequest(w, fmt.Sprintf(
			"File too large. Maximum size is %s", humanSize(h.maxSize),
		))
	case errors.Is(err, ErrTooManyPixels):
		core.BadRequest(w, fmt.Sprintf(
			"Image too large. Maximum is %d megapixels", MaxPixels/1_000_000,
		))
	case errors.Is(err, ErrUnsupportedType):
		core.BadRequest(w, "Unsupported file type. Use JPG, PNG, GIF or WEBP")
	default:
		core.InternalServerError(w, r, err)
	}
}

func humanSize(n int64) string {
	const mb = 1 << 20
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%dKB", n/1024)
}
