package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	apierrors "csatpulse/internal/errors"
	"csatpulse/internal/services"
	apiv1 "csatpulse/pkg/contracts/api/v1"
)

// ExportHandler serves the CSV export downloads.
type ExportHandler struct {
	service      *services.ExportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler.
func NewExportHandler(service *services.ExportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{dataset}", h.Export)
	return r
}

// Export handles GET /api/export/{dataset}, writing the date-stamped
// CSV file and streaming it back as an attachment.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	req := apiv1.ExportRequest{Dataset: chi.URLParam(r, "dataset")}
	if err := validateRequest(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	info, err := h.service.Export(r.Context(), req.Dataset)
	if err != nil {
		if errors.Is(err, services.ErrUnknownDataset) {
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusBadRequest, "UNKNOWN_DATASET", "Unrecognized export dataset", err.Error()))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ExportError(req.Dataset, err))
		return
	}

	filename := filepath.Base(info.Path)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, info.Path)
}
