package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/forge-os/pulse/internal/domain"
)

var ingestionSourceColumns = []string{
	"id", "account_name", "spreadsheet_id", "tab", "active",
	"last_run_at", "last_status", "created_at", "updated_at",
}

type ingestionSourceRepository struct {
	db *sql.DB
}

// NewIngestionSourceRepository creates a new PostgreSQL ingestion source
// repository
func NewIngestionSourceRepository(db *sql.DB) domain.IngestionSourceRepository {
	return &ingestionSourceRepository{db: db}
}

func (r *ingestionSourceRepository) Create(ctx context.Context, source *domain.IngestionSource) error {
	if source.ID == "" {
		source.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	source.CreatedAt = now
	source.UpdatedAt = now

	query := `
		INSERT INTO ingestion_sources (
			id, account_name, spreadsheet_id, tab, active,
			last_run_at, last_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		source.ID,
		source.AccountName,
		source.SpreadsheetID,
		source.Tab,
		source.Active,
		source.LastRunAt,
		source.LastStatus,
		source.CreatedAt,
		source.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ingestion source: %w", err)
	}

	return nil
}

func (r *ingestionSourceRepository) GetByID(ctx context.Context, id string) (*domain.IngestionSource, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *ingestionSourceRepository) GetBySpreadsheetID(ctx context.Context, spreadsheetID string) (*domain.IngestionSource, error) {
	return r.getOne(ctx, sq.Eq{"spreadsheet_id": spreadsheetID})
}

func (r *ingestionSourceRepository) getOne(ctx context.Context, where sq.Eq) (*domain.IngestionSource, error) {
	query, args, err := sq.Select(ingestionSourceColumns...).
		From("ingestion_sources").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build ingestion source query: %w", err)
	}

	source, err := scanIngestionSource(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrIngestionSourceNotFound{Message: "ingestion source not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingestion source: %w", err)
	}

	return source, nil
}

func (r *ingestionSourceRepository) List(ctx context.Context) ([]*domain.IngestionSource, error) {
	query, args, err := sq.Select(ingestionSourceColumns...).
		From("ingestion_sources").
		OrderBy("account_name ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build ingestion source list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingestion sources: %w", err)
	}
	defer rows.Close()

	var sources []*domain.IngestionSource
	for rows.Next() {
		source, err := scanIngestionSource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingestion source: %w", err)
		}
		sources = append(sources, source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingestion sources: %w", err)
	}

	return sources, nil
}

func (r *ingestionSourceRepository) Update(ctx context.Context, source *domain.IngestionSource) error {
	source.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE ingestion_sources SET
			account_name = $1,
			spreadsheet_id = $2,
			tab = $3,
			active = $4,
			updated_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		source.AccountName,
		source.SpreadsheetID,
		source.Tab,
		source.Active,
		source.UpdatedAt,
		source.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ingestion source: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check ingestion source update: %w", err)
	}
	if affected == 0 {
		return &domain.ErrIngestionSourceNotFound{Message: "ingestion source not found"}
	}

	return nil
}

func (r *ingestionSourceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ingestion_sources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingestion source: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check ingestion source delete: %w", err)
	}
	if affected == 0 {
		return &domain.ErrIngestionSourceNotFound{Message: "ingestion source not found"}
	}

	return nil
}

// RecordRun stamps the post-run bookkeeping for a spreadsheet. Discovered
// spreadsheets that were never configured get a placeholder row so the
// admin view shows them.
func (r *ingestionSourceRepository) RecordRun(ctx context.Context, spreadsheetID string, runAt time.Time, status string) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO ingestion_sources (
			id, account_name, spreadsheet_id, active,
			last_run_at, last_status, created_at, updated_at
		) VALUES ($1, 'Unknown', $2, TRUE, $3, $4, $5, $5)
		ON CONFLICT (spreadsheet_id) DO UPDATE SET
			last_run_at = EXCLUDED.last_run_at,
			last_status = EXCLUDED.last_status,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), spreadsheetID, runAt, status, now)
	if err != nil {
		return fmt.Errorf("failed to record ingestion run: %w", err)
	}

	return nil
}

func scanIngestionSource(row rowScanner) (*domain.IngestionSource, error) {
	var source domain.IngestionSource
	err := row.Scan(
		&source.ID,
		&source.AccountName,
		&source.SpreadsheetID,
		&source.Tab,
		&source.Active,
		&source.LastRunAt,
		&source.LastStatus,
		&source.CreatedAt,
		&source.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &source, nil
}
