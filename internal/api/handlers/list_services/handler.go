package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-BikeService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services?category=repair
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var category *string
	if rawCategory := r.URL.Query().Get("category"); rawCategory != "" {
		category = &rawCategory
	}

	result, err := h.service.List(r.Context(), category)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Returned %d services", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
