package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forge-os/pulse/internal/domain"
)

type touchRepository struct {
	db *sql.DB
}

// NewTouchRepository creates a new PostgreSQL touch repository
func NewTouchRepository(db *sql.DB) domain.TouchRepository {
	return &touchRepository{db: db}
}

// Upsert inserts the touch keyed by (account_id, touched_at, actor,
// channel); a matching tuple only refreshes the summary.
func (r *touchRepository) Upsert(ctx context.Context, touch *domain.Touch) error {
	if touch.ID == "" {
		touch.ID = uuid.New().String()
	}
	if touch.CreatedAt.IsZero() {
		touch.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO touches (
			id, account_id, touched_at, actor, channel, summary, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (account_id, touched_at, actor, channel) DO UPDATE SET
			summary = EXCLUDED.summary
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		touch.ID,
		touch.AccountID,
		touch.TouchedAt,
		touch.Actor,
		touch.Channel,
		touch.Summary,
		touch.CreatedAt,
	).Scan(&touch.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert touch: %w", err)
	}

	return nil
}

// GetLatestByAccount returns the most recent touch for the account, or nil
// when it has none.
func (r *touchRepository) GetLatestByAccount(ctx context.Context, accountID string) (*domain.Touch, error) {
	query := `
		SELECT id, account_id, touched_at, actor, channel, summary, created_at
		FROM touches
		WHERE account_id = $1
		ORDER BY touched_at DESC
		LIMIT 1
	`

	var touch domain.Touch
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&touch.ID,
		&touch.AccountID,
		&touch.TouchedAt,
		&touch.Actor,
		&touch.Channel,
		&touch.Summary,
		&touch.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest touch: %w", err)
	}

	return &touch, nil
}
