package domain

import (
	"context"
	"time"
)

type ActionStatus string

const (
	ActionStatusOpen   ActionStatus = "open"
	ActionStatusAtRisk ActionStatus = "at_risk"
	ActionStatusClosed ActionStatus = "closed"
)

type ActionSeverity string

const (
	SeveritySev0 ActionSeverity = "sev-0"
	SeveritySev1 ActionSeverity = "sev-1"
	SeveritySev2 ActionSeverity = "sev-2"
)

// Action is an open item or blocker against an account. Identity is the
// (account_id, title, opened_at) tuple: re-ingesting the same title and
// open timestamp updates the row in place. Note that a correction to the
// opened date in the source sheet therefore creates a new row instead of
// updating the original; likely a latent bug upstream, preserved here.
type Action struct {
	ID          string         `json:"id" db:"id"`
	AccountID   string         `json:"account_id" db:"account_id"`
	Title       string         `json:"title" db:"title"`
	Severity    ActionSeverity `json:"severity" db:"severity"`
	Status      ActionStatus   `json:"status" db:"status"`
	Responsible string         `json:"responsible" db:"responsible"`
	DueDate     *time.Time     `json:"due_date,omitempty" db:"due_date"`
	OpenedAt    time.Time      `json:"opened_at" db:"opened_at"`
	LastUpdate  time.Time      `json:"last_update" db:"last_update"`
	SlackLink   *string        `json:"slack_link,omitempty" db:"slack_link"`
	DocLink     *string        `json:"doc_link,omitempty" db:"doc_link"`
	AgeD        int            `json:"age_d" db:"age_d"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

type ActionRepository interface {
	// Upsert inserts or updates the action identified by
	// (account_id, title, opened_at).
	Upsert(ctx context.Context, action *Action) error

	// GetLatestByAccount returns the account's most recently updated
	// action (by last_update), or nil when the account has none.
	GetLatestByAccount(ctx context.Context, accountID string) (*Action, error)
}
