package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "csatpulse/internal/errors"
	"csatpulse/internal/middleware"
	"csatpulse/internal/services"
)

// maxMultipartMemory bounds the in-memory portion of a parsed upload
// form; larger parts spill to temp files.
const maxMultipartMemory = 32 << 20

// UploadHandler serves the upload ingestion endpoints.
type UploadHandler struct {
	service      *services.UploadService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(service *services.UploadService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *UploadHandler {
	return &UploadHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "upload_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the upload routes.
func (h *UploadHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Upload)
	r.Get("/status", h.Status)
	r.Delete("/", h.Clear)

	return r
}

// Upload handles POST /api/uploads. The multipart form may carry any
// number of parts under the "files" field; each file succeeds or fails
// on its own.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("files", "request body must be multipart/form-data"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	batch := make([]services.UploadFile, 0, len(headers))
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
		defer part.Close()

		batch = append(batch, services.UploadFile{
			Name:   header.Filename,
			Size:   header.Size,
			Reader: part,
		})
	}

	h.logger.InfoContext(r.Context(), "received upload batch",
		slog.Int("files", len(batch)),
		slog.String("request_id", reqID),
	)

	result, err := h.service.ProcessBatch(r.Context(), batch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyBatch):
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("files", "upload at least one file"))
		case errors.Is(err, services.ErrBatchTooLarge):
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusBadRequest, "BATCH_TOO_LARGE", "Too many files in upload batch", err.Error()))
		case errors.Is(err, services.ErrAllFilesRejected):
			h.errorHandler.HandleError(w, r, apierrors.UploadRejectedError(result.Rejected))
		default:
			h.errorHandler.HandleError(w, r, err)
		}
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// Status handles GET /api/uploads/status.
func (h *UploadHandler) Status(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Status(r.Context()),
	})
}

// Clear handles DELETE /api/uploads, dropping every uploaded dataset.
func (h *UploadHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.service.Clear(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
	})
}
