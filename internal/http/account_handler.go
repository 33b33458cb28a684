package http

import (
	"net/http"

	"github.com/forge-os/pulse/internal/domain"
	"github.com/forge-os/pulse/internal/http/middleware"
	"github.com/forge-os/pulse/pkg/logger"
)

// AccountHandler serves the read side of the dashboard: account listings
// with optional phase/escalation filters, and single-account lookup.
type AccountHandler struct {
	accountRepo domain.AccountRepository
	auth        *middleware.AuthMiddleware
	logger      logger.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountRepo domain.AccountRepository, auth *middleware.AuthMiddleware, log logger.Logger) *AccountHandler {
	return &AccountHandler{
		accountRepo: accountRepo,
		auth:        auth,
		logger:      log,
	}
}

// RegisterRoutes registers the account routes
func (h *AccountHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/accounts.list", h.auth.RequireAuth(h.ListAccounts))
	mux.Handle("/api/accounts.get", h.auth.RequireAuth(h.GetAccount))
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var filter domain.AccountFilter
	if raw := r.URL.Query().Get("phase"); raw != "" {
		phase := domain.Phase(raw)
		filter.Phase = &phase
	}
	if raw := r.URL.Query().Get("escalation_state"); raw != "" {
		state := domain.EscalationState(raw)
		filter.EscalationState = &state
	}

	accounts, err := h.accountRepo.List(r.Context(), filter)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list accounts")
		WriteJSONError(w, "Failed to fetch accounts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": accounts,
	})
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		WriteJSONError(w, "name is required", http.StatusBadRequest)
		return
	}

	account, err := h.accountRepo.GetByName(r.Context(), name)
	if err != nil {
		if _, ok := err.(*domain.ErrAccountNotFound); ok {
			WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to get account")
		WriteJSONError(w, "Failed to fetch account", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"account": account,
	})
}
