package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forge-os/pulse/internal/domain"
)

type actionRepository struct {
	db *sql.DB
}

// NewActionRepository creates a new PostgreSQL action repository
func NewActionRepository(db *sql.DB) domain.ActionRepository {
	return &actionRepository{db: db}
}

// Upsert inserts or updates the action keyed by
// (account_id, title, opened_at).
func (r *actionRepository) Upsert(ctx context.Context, action *domain.Action) error {
	if action.ID == "" {
		action.ID = uuid.New().String()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO actions (
			id, account_id, title, severity, status, responsible,
			due_date, opened_at, last_update, slack_link, doc_link, age_d,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (account_id, title, opened_at) DO UPDATE SET
			severity = EXCLUDED.severity,
			status = EXCLUDED.status,
			responsible = EXCLUDED.responsible,
			due_date = EXCLUDED.due_date,
			last_update = EXCLUDED.last_update,
			slack_link = EXCLUDED.slack_link,
			doc_link = EXCLUDED.doc_link,
			age_d = EXCLUDED.age_d
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		action.ID,
		action.AccountID,
		action.Title,
		action.Severity,
		action.Status,
		action.Responsible,
		action.DueDate,
		action.OpenedAt,
		action.LastUpdate,
		action.SlackLink,
		action.DocLink,
		action.AgeD,
		action.CreatedAt,
	).Scan(&action.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert action: %w", err)
	}

	return nil
}

// GetLatestByAccount returns the most recently updated action for the
// account, or nil when it has none.
func (r *actionRepository) GetLatestByAccount(ctx context.Context, accountID string) (*domain.Action, error) {
	query := `
		SELECT id, account_id, title, severity, status, responsible,
			due_date, opened_at, last_update, slack_link, doc_link, age_d,
			created_at
		FROM actions
		WHERE account_id = $1
		ORDER BY last_update DESC
		LIMIT 1
	`

	var action domain.Action
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&action.ID,
		&action.AccountID,
		&action.Title,
		&action.Severity,
		&action.Status,
		&action.Responsible,
		&action.DueDate,
		&action.OpenedAt,
		&action.LastUpdate,
		&action.SlackLink,
		&action.DocLink,
		&action.AgeD,
		&action.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest action: %w", err)
	}

	return &action, nil
}
