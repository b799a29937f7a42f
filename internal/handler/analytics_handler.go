package handler

import (
	"net/http"

	"dapur-manis/internal/service"

	"github.com/rs/zerolog"
)

// AnalyticsHandler handles the admin dashboard endpoint.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("handler", "analytics").Logger(),
	}
}

// Dashboard handles GET /api/analytics requests.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
