package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/forge-os/pulse/internal/domain"
	"github.com/forge-os/pulse/internal/http/middleware"
	"github.com/forge-os/pulse/internal/repository"
	"github.com/forge-os/pulse/pkg/logger"
)

func newAccountHandlerMux(repo domain.AccountRepository) *http.ServeMux {
	auth := middleware.NewAuthMiddleware(testAPISecret)
	handler := NewAccountHandler(repo, auth, logger.NewNopLogger())
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux
}

func TestAccountHandler_ListAccounts(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		mux := newAccountHandlerMux(new(repository.MockAccountRepository))

		req := httptest.NewRequest(http.MethodGet, "/api/accounts.list", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns accounts", func(t *testing.T) {
		repo := new(repository.MockAccountRepository)
		repo.On("List", mock.Anything, domain.AccountFilter{}).Return([]*domain.Account{
			{ID: "acc-1", Name: "SoFi", Phase: domain.PhasePilot},
		}, nil)
		mux := newAccountHandlerMux(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/accounts.list", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Accounts []*domain.Account `json:"accounts"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Accounts, 1)
		assert.Equal(t, "SoFi", body.Accounts[0].Name)
	})

	t.Run("passes filters through", func(t *testing.T) {
		repo := new(repository.MockAccountRepository)
		state := domain.EscalationEscalate
		repo.On("List", mock.Anything, domain.AccountFilter{EscalationState: &state}).
			Return([]*domain.Account{}, nil)
		mux := newAccountHandlerMux(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/accounts.list?escalation_state=escalate", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		repo.AssertExpectations(t)
	})
}

func TestAccountHandler_GetAccount(t *testing.T) {
	t.Run("requires a name", func(t *testing.T) {
		mux := newAccountHandlerMux(new(repository.MockAccountRepository))

		req := httptest.NewRequest(http.MethodGet, "/api/accounts.get", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns the account", func(t *testing.T) {
		repo := new(repository.MockAccountRepository)
		repo.On("GetByName", mock.Anything, "SoFi").Return(&domain.Account{
			ID: "acc-1", Name: "SoFi", EscalationState: domain.EscalationWatch,
		}, nil)
		mux := newAccountHandlerMux(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/accounts.get?name=SoFi", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Account *domain.Account `json:"account"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, domain.EscalationWatch, body.Account.EscalationState)
	})

	t.Run("maps a missing account to 404", func(t *testing.T) {
		repo := new(repository.MockAccountRepository)
		repo.On("GetByName", mock.Anything, "Missing").
			Return(nil, &domain.ErrAccountNotFound{Message: "account not found"})
		mux := newAccountHandlerMux(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/accounts.get?name=Missing", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
