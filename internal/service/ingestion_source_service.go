package service

import (
	"context"
	"fmt"

	"github.com/forge-os/pulse/internal/domain"
	"github.com/forge-os/pulse/pkg/logger"
)

// IngestionSourceService handles admin CRUD over configured spreadsheet
// sources.
type IngestionSourceService struct {
	repo   domain.IngestionSourceRepository
	logger logger.Logger
}

// NewIngestionSourceService creates a new ingestion source service
func NewIngestionSourceService(repo domain.IngestionSourceRepository, log logger.Logger) *IngestionSourceService {
	return &IngestionSourceService{repo: repo, logger: log}
}

// CreateSource registers a new spreadsheet, rejecting duplicates of an
// already-registered spreadsheet ID.
func (s *IngestionSourceService) CreateSource(ctx context.Context, req *domain.CreateIngestionSourceRequest) (*domain.IngestionSource, error) {
	source, err := req.Validate()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySpreadsheetID(ctx, source.SpreadsheetID)
	if err != nil {
		if _, ok := err.(*domain.ErrIngestionSourceNotFound); !ok {
			return nil, fmt.Errorf("failed to check for existing source: %w", err)
		}
	}
	if existing != nil {
		return nil, &domain.ErrIngestionSourceExists{Message: "spreadsheet ID already exists"}
	}

	if err := s.repo.Create(ctx, source); err != nil {
		return nil, err
	}

	s.logger.WithField("spreadsheet_id", source.SpreadsheetID).Info("Ingestion source created")
	return source, nil
}

func (s *IngestionSourceService) ListSources(ctx context.Context) ([]*domain.IngestionSource, error) {
	return s.repo.List(ctx)
}

// UpdateSource applies the non-nil fields of the request to an existing
// source. Changing the spreadsheet ID to one owned by another source is
// rejected.
func (s *IngestionSourceService) UpdateSource(ctx context.Context, req *domain.UpdateIngestionSourceRequest) (*domain.IngestionSource, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	source, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.SpreadsheetID != nil && *req.SpreadsheetID != source.SpreadsheetID {
		duplicate, err := s.repo.GetBySpreadsheetID(ctx, *req.SpreadsheetID)
		if err != nil {
			if _, ok := err.(*domain.ErrIngestionSourceNotFound); !ok {
				return nil, fmt.Errorf("failed to check for duplicate source: %w", err)
			}
		}
		if duplicate != nil {
			return nil, &domain.ErrIngestionSourceExists{Message: "spreadsheet ID already exists"}
		}
		source.SpreadsheetID = *req.SpreadsheetID
	}
	if req.AccountName != nil {
		source.AccountName = *req.AccountName
	}
	if req.Tab != nil {
		source.Tab = req.Tab
	}
	if req.Active != nil {
		source.Active = *req.Active
	}

	if err := s.repo.Update(ctx, source); err != nil {
		return nil, err
	}

	return source, nil
}

func (s *IngestionSourceService) DeleteSource(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
