package domain

import (
	"context"
	"time"
)

// Touch is one stakeholder-contact event. Append-mostly: a new
// (account, touched_at, actor, channel) tuple creates a row, a matching
// tuple only refreshes the free-text summary.
type Touch struct {
	ID        string    `json:"id" db:"id"`
	AccountID string    `json:"account_id" db:"account_id"`
	TouchedAt time.Time `json:"touched_at" db:"touched_at"`
	Actor     string    `json:"actor" db:"actor"`
	Channel   string    `json:"channel" db:"channel"`
	Summary   *string   `json:"summary,omitempty" db:"summary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type TouchRepository interface {
	// Upsert inserts or updates the touch identified by
	// (account_id, touched_at, actor, channel).
	Upsert(ctx context.Context, touch *Touch) error

	// GetLatestByAccount returns the account's most recent touch
	// (by touched_at), or nil when the account has none.
	GetLatestByAccount(ctx context.Context, accountID string) (*Touch, error)
}
