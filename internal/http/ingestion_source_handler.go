package http

import (
	"encoding/json"
	"net/http"

	"github.com/forge-os/pulse/internal/domain"
	"github.com/forge-os/pulse/internal/http/middleware"
	"github.com/forge-os/pulse/pkg/logger"
)

// IngestionSourceHandler handles admin CRUD over configured spreadsheet
// sources.
type IngestionSourceHandler struct {
	service domain.IngestionSourceServiceInterface
	auth    *middleware.AuthMiddleware
	logger  logger.Logger
}

// NewIngestionSourceHandler creates a new ingestion source handler
func NewIngestionSourceHandler(
	service domain.IngestionSourceServiceInterface,
	auth *middleware.AuthMiddleware,
	log logger.Logger,
) *IngestionSourceHandler {
	return &IngestionSourceHandler{
		service: service,
		auth:    auth,
		logger:  log,
	}
}

// RegisterRoutes registers the ingestion source routes, all admin-only.
func (h *IngestionSourceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/ingestionSources.list", h.auth.RequireAdmin(h.ListSources))
	mux.Handle("/api/ingestionSources.create", h.auth.RequireAdmin(h.CreateSource))
	mux.Handle("/api/ingestionSources.update", h.auth.RequireAdmin(h.UpdateSource))
	mux.Handle("/api/ingestionSources.delete", h.auth.RequireAdmin(h.DeleteSource))
}

func (h *IngestionSourceHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sources, err := h.service.ListSources(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list ingestion sources")
		WriteJSONError(w, "Failed to fetch sources", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sources": sources,
	})
}

func (h *IngestionSourceHandler) CreateSource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateIngestionSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	source, err := h.service.CreateSource(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to create source")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"source": source,
	})
}

func (h *IngestionSourceHandler) UpdateSource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.UpdateIngestionSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	source, err := h.service.UpdateSource(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update source")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"source": source,
	})
}

func (h *IngestionSourceHandler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteSource(r.Context(), req.ID); err != nil {
		h.writeServiceError(w, err, "Failed to delete source")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *IngestionSourceHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch err.(type) {
	case *domain.ErrIngestionSourceNotFound:
		WriteJSONError(w, err.Error(), http.StatusNotFound)
	case *domain.ErrIngestionSourceExists, *domain.ErrValidation:
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.WithField("error", err.Error()).Error(fallback)
		WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}
