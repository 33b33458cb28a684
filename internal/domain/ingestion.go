package domain

import (
	"context"
	"time"
)

// Run statuses recorded on an ingestion source after every run.
const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// IngestionSource is one configured spreadsheet, tracked independently of
// account data. LastRunAt/LastStatus reflect the whole run's outcome, not
// this source's own, matching the binary run-success contract.
type IngestionSource struct {
	ID            string     `json:"id" db:"id"`
	AccountName   string     `json:"account_name" db:"account_name"`
	SpreadsheetID string     `json:"spreadsheet_id" db:"spreadsheet_id"`
	Tab           *string    `json:"tab,omitempty" db:"tab"`
	Active        bool       `json:"active" db:"active"`
	LastRunAt     *time.Time `json:"last_run_at,omitempty" db:"last_run_at"`
	LastStatus    *string    `json:"last_status,omitempty" db:"last_status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// IngestionResult is the stable result contract of one ingestion run.
// Success is true only when zero errors accumulated anywhere; persisted
// counts from succeeding sources stand regardless.
type IngestionResult struct {
	Success           bool      `json:"success"`
	AccountsProcessed int       `json:"accountsProcessed"`
	ActionsProcessed  int       `json:"actionsProcessed"`
	TouchesProcessed  int       `json:"touchesProcessed"`
	Errors            []string  `json:"errors"`
	Timestamp         time.Time `json:"timestamp"`
}

type IngestionSourceRepository interface {
	Create(ctx context.Context, source *IngestionSource) error
	GetByID(ctx context.Context, id string) (*IngestionSource, error)
	GetBySpreadsheetID(ctx context.Context, spreadsheetID string) (*IngestionSource, error)

	// List returns all sources ordered by account name.
	List(ctx context.Context) ([]*IngestionSource, error)

	Update(ctx context.Context, source *IngestionSource) error
	Delete(ctx context.Context, id string) error

	// RecordRun upserts the bookkeeping row for a spreadsheet, creating a
	// placeholder source when the spreadsheet was discovered rather than
	// configured.
	RecordRun(ctx context.Context, spreadsheetID string, runAt time.Time, status string) error
}

// IngestionServiceInterface runs the ingestion pipeline.
type IngestionServiceInterface interface {
	RunIngestion(ctx context.Context) *IngestionResult
}

// IngestionSourceServiceInterface exposes admin CRUD over sources.
type IngestionSourceServiceInterface interface {
	CreateSource(ctx context.Context, req *CreateIngestionSourceRequest) (*IngestionSource, error)
	ListSources(ctx context.Context) ([]*IngestionSource, error)
	UpdateSource(ctx context.Context, req *UpdateIngestionSourceRequest) (*IngestionSource, error)
	DeleteSource(ctx context.Context, id string) error
}

// CreateIngestionSourceRequest is the payload for ingestionSources.create.
type CreateIngestionSourceRequest struct {
	AccountName   string  `json:"account_name"`
	SpreadsheetID string  `json:"spreadsheet_id"`
	Tab           *string `json:"tab,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

// Validate checks the request and materializes a source with defaults
// applied (active defaults to true).
func (r *CreateIngestionSourceRequest) Validate() (*IngestionSource, error) {
	if r.AccountName == "" {
		return nil, &ErrValidation{Message: "account name is required"}
	}
	if r.SpreadsheetID == "" {
		return nil, &ErrValidation{Message: "spreadsheet ID is required"}
	}
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &IngestionSource{
		AccountName:   r.AccountName,
		SpreadsheetID: r.SpreadsheetID,
		Tab:           r.Tab,
		Active:        active,
	}, nil
}

// UpdateIngestionSourceRequest is the payload for ingestionSources.update.
// Nil fields are left unchanged.
type UpdateIngestionSourceRequest struct {
	ID            string  `json:"id"`
	AccountName   *string `json:"account_name,omitempty"`
	SpreadsheetID *string `json:"spreadsheet_id,omitempty"`
	Tab           *string `json:"tab,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

func (r *UpdateIngestionSourceRequest) Validate() error {
	if r.ID == "" {
		return &ErrValidation{Message: "id is required"}
	}
	if r.AccountName != nil && *r.AccountName == "" {
		return &ErrValidation{Message: "account name cannot be empty"}
	}
	if r.SpreadsheetID != nil && *r.SpreadsheetID == "" {
		return &ErrValidation{Message: "spreadsheet ID cannot be empty"}
	}
	return nil
}

// ErrValidation is returned when a request payload fails validation
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrIngestionSourceNotFound is returned when a source is not found
type ErrIngestionSourceNotFound struct {
	Message string
}

func (e *ErrIngestionSourceNotFound) Error() string {
	return e.Message
}

// ErrIngestionSourceExists is returned when a spreadsheet ID is already
// registered to another source
type ErrIngestionSourceExists struct {
	Message string
}

func (e *ErrIngestionSourceExists) Error() string {
	return e.Message
}
