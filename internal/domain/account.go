package domain

import (
	"context"
	"time"
)

// Phase is the onboarding stage of an account, ordered P0 through P4.
type Phase string

const (
	PhaseAlign      Phase = "P0_ALIGN"
	PhasePilot      Phase = "P1_PILOT"
	PhaseExpansion  Phase = "P2_EXPANSION"
	PhaseEnterprise Phase = "P3_ENTERPRISE"
	PhaseHandoff    Phase = "P4_HANDOFF"
)

// Sentiment values as they appear in the rollup sheet.
const (
	SentimentRed    = "R"
	SentimentYellow = "Y"
	SentimentGreen  = "G"
)

// Account is a customer account tracked through onboarding. Accounts are
// identified by name; the surrogate ID exists for referential storage only.
type Account struct {
	ID                string          `json:"id" db:"id"`
	Name              string          `json:"name" db:"name"`
	Phase             Phase           `json:"phase" db:"phase"`
	STOID             string          `json:"sto_id" db:"sto_id"`
	Sponsor           *string         `json:"sponsor,omitempty" db:"sponsor"`
	Champion          *string         `json:"champion,omitempty" db:"champion"`
	NextGateDue       *time.Time      `json:"next_gate_due,omitempty" db:"next_gate_due"`
	DSLTDays          int             `json:"dslt_days" db:"dslt_days"`
	Sentiment         *string         `json:"sentiment,omitempty" db:"sentiment"`
	Volume7d          float64         `json:"volume_7d" db:"volume_7d"`
	Revenue7d         float64         `json:"revenue_7d" db:"revenue_7d"`
	Cost7d            float64         `json:"cost_7d" db:"cost_7d"`
	GM7d              float64         `json:"gm_7d" db:"gm_7d"`
	QCPct7d           float64         `json:"qc_pct_7d" db:"qc_pct_7d"`
	AHT7d             float64         `json:"aht_7d" db:"aht_7d"`
	P95Ms7d           float64         `json:"p95_ms_7d" db:"p95_ms_7d"`
	Automation7d      float64         `json:"automation_7d" db:"automation_7d"`
	BlockersOpen      int             `json:"blockers_open" db:"blockers_open"`
	OldestBlockerAgeD int             `json:"oldest_blocker_age_d" db:"oldest_blocker_age_d"`
	EscalationScore   int             `json:"escalation_score" db:"escalation_score"`
	EscalationState   EscalationState `json:"escalation_state" db:"escalation_state"`
	Notes             *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// AccountFilter narrows List results. Nil fields are ignored.
type AccountFilter struct {
	Phase           *Phase
	EscalationState *EscalationState
}

type AccountRepository interface {
	// Upsert inserts or fully overwrites the account identified by its
	// name and populates the surrogate ID on the passed struct.
	Upsert(ctx context.Context, account *Account) error

	// GetByName retrieves an account by its business key.
	GetByName(ctx context.Context, name string) (*Account, error)

	// List returns accounts matching the filter, ordered by name.
	List(ctx context.Context, filter AccountFilter) ([]*Account, error)

	// UpdateDSLT sets only the days-since-last-touch freshness metric.
	UpdateDSLT(ctx context.Context, accountID string, days int) error
}

// ErrAccountNotFound is returned when an account is not found
type ErrAccountNotFound struct {
	Message string
}

func (e *ErrAccountNotFound) Error() string {
	return e.Message
}
