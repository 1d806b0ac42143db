package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"csatpulse/internal/dataprocessing"
	apierrors "csatpulse/internal/errors"
	"csatpulse/internal/middleware"
	"csatpulse/internal/services"
)

// DashboardHandler serves the dashboard data views.
type DashboardHandler struct {
	service      *services.DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *services.DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.GetOverview)
	r.Get("/daily", h.GetDaily)
	r.Get("/events", h.GetEvents)
	r.Get("/monthly/{metric}", h.GetMonthlyComparison)
	r.Get("/risk", h.GetRiskSummary)
	r.Get("/risk/{metric}", h.GetRisk)

	return r
}

// GetOverview handles GET /api/dashboard/overview.
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Overview(r.Context()),
	})
}

// GetDaily handles GET /api/dashboard/daily.
func (h *DashboardHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDailyRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Daily(r.Context(), req)
	if err != nil {
		h.handleViewError(w, r, "daily", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
		"count":  len(view.Records),
	})
}

// GetEvents handles GET /api/dashboard/events.
func (h *DashboardHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEventsRequest(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Events(r.Context(), req)
	if err != nil {
		h.handleViewError(w, r, "events", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
		"count":  len(view.Events),
	})
}

// GetMonthlyComparison handles GET /api/dashboard/monthly/{metric}.
func (h *DashboardHandler) GetMonthlyComparison(w http.ResponseWriter, r *http.Request) {
	req, err := decodeComparisonRequest(r, chi.URLParam(r, "metric"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.MonthlyComparison(r.Context(), req)
	if err != nil {
		h.handleViewError(w, r, "monthly comparison", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
		"count":  len(view.Series.Periods),
	})
}

// GetRiskSummary handles GET /api/dashboard/risk.
func (h *DashboardHandler) GetRiskSummary(w http.ResponseWriter, r *http.Request) {
	overview := h.service.RiskSummary(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   overview,
		"count":  len(overview.Profiles),
	})
}

// GetRisk handles GET /api/dashboard/risk/{metric}.
func (h *DashboardHandler) GetRisk(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Risk(r.Context(), chi.URLParam(r, "metric"))
	if err != nil {
		h.handleViewError(w, r, "risk", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
	})
}

// handleViewError maps service failures to API errors.
func (h *DashboardHandler) handleViewError(w http.ResponseWriter, r *http.Request, view string, err error) {
	h.logger.ErrorContext(r.Context(), "failed to build view",
		slog.String("view", view),
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)

	switch {
	case errors.Is(err, services.ErrUnknownMetric):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "UNKNOWN_METRIC", "Unrecognized metric name", err.Error()))
	case errors.Is(err, services.ErrUnknownPeriod):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "UNKNOWN_PERIOD", "Unrecognized period name", err.Error()))
	case errors.Is(err, dataprocessing.ErrInvalidDateRange):
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidDateRange)
	default:
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
	}
}
