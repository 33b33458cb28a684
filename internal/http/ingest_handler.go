package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/forge-os/pulse/internal/domain"
	"github.com/forge-os/pulse/pkg/logger"
)

// ETLTokenHeader carries the shared secret of external ETL schedulers.
const ETLTokenHeader = "X-ETL-Token"

// IngestHandler exposes the ingestion trigger endpoint.
type IngestHandler struct {
	ingestionService domain.IngestionServiceInterface
	etlToken         string
	logger           logger.Logger
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingestionService domain.IngestionServiceInterface, etlToken string, log logger.Logger) *IngestHandler {
	return &IngestHandler{
		ingestionService: ingestionService,
		etlToken:         etlToken,
		logger:           log,
	}
}

// RegisterRoutes registers the ingestion routes
func (h *IngestHandler) RegisterRoutes(mux *http.ServeMux) {
	// shared-secret guarded, for cron/scheduler callers
	mux.Handle("/api/ingest.run", http.HandlerFunc(h.RunIngestion))
}

// RunIngestion triggers a full ingestion run and returns its result. The
// HTTP status mirrors the run's binary success flag: any accumulated error
// yields a 500 even when other sources persisted.
func (h *IngestHandler) RunIngestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed. Use POST with "+ETLTokenHeader+" header.", http.StatusMethodNotAllowed)
		return
	}

	token := r.Header.Get(ETLTokenHeader)
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.etlToken)) != 1 {
		WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result := h.ingestionService.RunIngestion(r.Context())

	h.logger.WithFields(map[string]interface{}{
		"success":  result.Success,
		"accounts": result.AccountsProcessed,
		"actions":  result.ActionsProcessed,
		"touches":  result.TouchesProcessed,
		"errors":   len(result.Errors),
	}).Info("Ingestion run finished")

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}
