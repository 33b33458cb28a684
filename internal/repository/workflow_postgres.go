package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forge-os/pulse/internal/domain"
)

type workflowRepository struct {
	db *sql.DB
}

// NewWorkflowRepository creates a new PostgreSQL workflow repository
func NewWorkflowRepository(db *sql.DB) domain.WorkflowRepository {
	return &workflowRepository{db: db}
}

// Upsert inserts or fully overwrites the workflow keyed by
// (account_id, name).
func (r *workflowRepository) Upsert(ctx context.Context, workflow *domain.Workflow) error {
	if workflow.ID == "" {
		workflow.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if workflow.CreatedAt.IsZero() {
		workflow.CreatedAt = now
	}
	workflow.UpdatedAt = now

	query := `
		INSERT INTO workflows (
			id, account_id, name, phase, golden10, access_ready,
			volume_7d, qc_pct_7d, aht_7d, p95_ms_7d, automation_7d,
			budget_util_7d, next_milestone, wg_sentiment, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
		ON CONFLICT (account_id, name) DO UPDATE SET
			phase = EXCLUDED.phase,
			golden10 = EXCLUDED.golden10,
			access_ready = EXCLUDED.access_ready,
			volume_7d = EXCLUDED.volume_7d,
			qc_pct_7d = EXCLUDED.qc_pct_7d,
			aht_7d = EXCLUDED.aht_7d,
			p95_ms_7d = EXCLUDED.p95_ms_7d,
			automation_7d = EXCLUDED.automation_7d,
			budget_util_7d = EXCLUDED.budget_util_7d,
			next_milestone = EXCLUDED.next_milestone,
			wg_sentiment = EXCLUDED.wg_sentiment,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		workflow.ID,
		workflow.AccountID,
		workflow.Name,
		workflow.Phase,
		workflow.Golden10,
		workflow.AccessReady,
		workflow.Volume7d,
		workflow.QCPct7d,
		workflow.AHT7d,
		workflow.P95Ms7d,
		workflow.Automation7d,
		workflow.BudgetUtil7d,
		workflow.NextMilestone,
		workflow.WGSentiment,
		workflow.CreatedAt,
		workflow.UpdatedAt,
	).Scan(&workflow.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert workflow: %w", err)
	}

	return nil
}
