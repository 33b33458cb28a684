package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/forge-os/pulse/internal/domain"
	"github.com/forge-os/pulse/internal/repository"
	"github.com/forge-os/pulse/pkg/logger"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestIngestionSourceService_CreateSource(t *testing.T) {
	t.Run("creates a new source with active defaulting to true", func(t *testing.T) {
		repo := new(repository.MockIngestionSourceRepository)
		service := NewIngestionSourceService(repo, logger.NewNopLogger())

		repo.On("GetBySpreadsheetID", mock.Anything, "sheet-1").
			Return(nil, &domain.ErrIngestionSourceNotFound{Message: "not found"})
		repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.IngestionSource) bool {
			return s.AccountName == "SoFi" && s.SpreadsheetID == "sheet-1" && s.Active
		})).Return(nil)

		source, err := service.CreateSource(context.Background(), &domain.CreateIngestionSourceRequest{
			AccountName:   "SoFi",
			SpreadsheetID: "sheet-1",
		})

		require.NoError(t, err)
		assert.True(t, source.Active)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate spreadsheet ID", func(t *testing.T) {
		repo := new(repository.MockIngestionSourceRepository)
		service := NewIngestionSourceService(repo, logger.NewNopLogger())

		repo.On("GetBySpreadsheetID", mock.Anything, "sheet-1").
			Return(&domain.IngestionSource{ID: "src-1", SpreadsheetID: "sheet-1"}, nil)

		_, err := service.CreateSource(context.Background(), &domain.CreateIngestionSourceRequest{
			AccountName:   "SoFi",
			SpreadsheetID: "sheet-1",
		})

		require.Error(t, err)
		assert.IsType(t, &domain.ErrIngestionSourceExists{}, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a request without an account name", func(t *testing.T) {
		repo := new(repository.MockIngestionSourceRepository)
		service := NewIngestionSourceService(repo, logger.NewNopLogger())

		_, err := service.CreateSource(context.Background(), &domain.CreateIngestionSourceRequest{
			SpreadsheetID: "sheet-1",
		})

		require.Error(t, err)
		assert.IsType(t, &domain.ErrValidation{}, err)
	})

	t.Run("propagates lookup failures", func(t *testing.T) {
		repo := new(repository.MockIngestionSourceRepository)
		service := NewIngestionSourceService(repo, logger.NewNopLogger())

		repo.On("GetBySpreadsheetID", mock.Anything, "sheet-1").Return(nil, errors.New("db down"))

		_, err := service.CreateSource(context.Background(), &domain.CreateIngestionSourceRequest{
			AccountName:   "SoFi",
			SpreadsheetID: "sheet-1",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check for existing source")
	})
}

func TestIngestionSourceService_UpdateSource(t *testing.T) {
	t.Run("applies only the provided fields", func(t *testing.T) {
		repo := new(repository.MockIngestionSourceRepository)
		service := NewIngestionSourceService(repo, logger.NewNopLogger())

		existing := &domain.IngestionSource{
			ID:            "src-1",
			AccountName:   "SoFi",
			SpreadsheetID: "sheet-1",
			Active:        true,
		}
		repo.On("GetByID", mock.Anything, "src-1").Return(existing, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.IngestionSource) bool {
			return s.AccountName == "SoFi" && s.SpreadsheetID == "sheet-1" && !s.Active
		})).Return(nil)

		source, err := service.UpdateSource(context.Background(), &domain.UpdateIngestionSourceRequest{
			ID:     "src-1",
			Active: boolPtr(false),
		})

		require.NoError(t, err)
		assert.False(t, source.Active)
		repo.AssertExpectations(t)
	})

	t.Run("rejects moving onto another source's spreadsheet", func(t *testing.T) {
		repo := new(repository.MockIngestionSourceRepository)
		service := NewIngestionSourceService(repo, logger.NewNopLogger())

		repo.On("GetByID", mock.Anything, "src-1").Return(&domain.IngestionSource{
			ID:            "src-1",
			SpreadsheetID: "sheet-1",
		}, nil)
		repo.On("GetBySpreadsheetID", mock.Anything, "sheet-2").Return(&domain.IngestionSource{
			ID:            "src-2",
			SpreadsheetID: "sheet-2",
		}, nil)

		_, err := service.UpdateSource(context.Background(), &domain.UpdateIngestionSourceRequest{
			ID:            "src-1",
			SpreadsheetID: strPtr("sheet-2"),
		})

		require.Error(t, err)
		assert.IsType(t, &domain.ErrIngestionSourceExists{}, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("returns not found for an unknown ID", func(t *testing.T) {
		repo := new(repository.MockIngestionSourceRepository)
		service := NewIngestionSourceService(repo, logger.NewNopLogger())

		repo.On("GetByID", mock.Anything, "missing").
			Return(nil, &domain.ErrIngestionSourceNotFound{Message: "not found"})

		_, err := service.UpdateSource(context.Background(), &domain.UpdateIngestionSourceRequest{ID: "missing"})

		require.Error(t, err)
		assert.IsType(t, &domain.ErrIngestionSourceNotFound{}, err)
	})
}

func TestIngestionSourceService_DeleteSource(t *testing.T) {
	t.Run("deletes an existing source", func(t *testing.T) {
		repo := new(repository.MockIngestionSourceRepository)
		service := NewIngestionSourceService(repo, logger.NewNopLogger())

		repo.On("GetByID", mock.Anything, "src-1").Return(&domain.IngestionSource{ID: "src-1"}, nil)
		repo.On("Delete", mock.Anything, "src-1").Return(nil)

		require.NoError(t, service.DeleteSource(context.Background(), "src-1"))
		repo.AssertExpectations(t)
	})

	t.Run("returns not found without deleting", func(t *testing.T) {
		repo := new(repository.MockIngestionSourceRepository)
		service := NewIngestionSourceService(repo, logger.NewNopLogger())

		repo.On("GetByID", mock.Anything, "missing").
			Return(nil, &domain.ErrIngestionSourceNotFound{Message: "not found"})

		err := service.DeleteSource(context.Background(), "missing")
		require.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestIngestionSourceService_ListSources(t *testing.T) {
	repo := new(repository.MockIngestionSourceRepository)
	service := NewIngestionSourceService(repo, logger.NewNopLogger())

	sources := []*domain.IngestionSource{
		{ID: "src-1", AccountName: "Chase"},
		{ID: "src-2", AccountName: "SoFi"},
	}
	repo.On("List", mock.Anything).Return(sources, nil)

	got, err := service.ListSources(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sources, got)
}
