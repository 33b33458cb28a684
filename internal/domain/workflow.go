package domain

import (
	"context"
	"time"
)

// DefaultWorkflowName is the sentinel workflow upserted when a rollup row
// carries no workflow label.
const DefaultWorkflowName = "— all —"

// Workflow is a unit of work under an account, unique per (account, name).
type Workflow struct {
	ID            string    `json:"id" db:"id"`
	AccountID     string    `json:"account_id" db:"account_id"`
	Name          string    `json:"name" db:"name"`
	Phase         Phase     `json:"phase" db:"phase"`
	Golden10      bool      `json:"golden10" db:"golden10"`
	AccessReady   bool      `json:"access_ready" db:"access_ready"`
	Volume7d      float64   `json:"volume_7d" db:"volume_7d"`
	QCPct7d       float64   `json:"qc_pct_7d" db:"qc_pct_7d"`
	AHT7d         float64   `json:"aht_7d" db:"aht_7d"`
	P95Ms7d       float64   `json:"p95_ms_7d" db:"p95_ms_7d"`
	Automation7d  float64   `json:"automation_7d" db:"automation_7d"`
	BudgetUtil7d  float64   `json:"budget_util_7d" db:"budget_util_7d"`
	NextMilestone *string   `json:"next_milestone,omitempty" db:"next_milestone"`
	WGSentiment   *string   `json:"wg_sentiment,omitempty" db:"wg_sentiment"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type WorkflowRepository interface {
	// Upsert inserts or fully overwrites the workflow identified by
	// (account_id, name) and populates the surrogate ID.
	Upsert(ctx context.Context, workflow *Workflow) error
}
