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

var accountColumns = []string{
	"id", "name", "phase", "sto_id", "sponsor", "champion", "next_gate_due",
	"dslt_days", "sentiment", "volume_7d", "revenue_7d", "cost_7d", "gm_7d",
	"qc_pct_7d", "aht_7d", "p95_ms_7d", "automation_7d", "blockers_open",
	"oldest_blocker_age_d", "escalation_score", "escalation_state", "notes",
	"created_at", "updated_at",
}

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *sql.DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// Upsert inserts or fully overwrites the account keyed by name. Every
// column is set on conflict; later ingestion always wins entirely.
func (r *accountRepository) Upsert(ctx context.Context, account *domain.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	query := `
		INSERT INTO accounts (
			id, name, phase, sto_id, sponsor, champion, next_gate_due,
			dslt_days, sentiment, volume_7d, revenue_7d, cost_7d, gm_7d,
			qc_pct_7d, aht_7d, p95_ms_7d, automation_7d, blockers_open,
			oldest_blocker_age_d, escalation_score, escalation_state, notes,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		ON CONFLICT (name) DO UPDATE SET
			phase = EXCLUDED.phase,
			sto_id = EXCLUDED.sto_id,
			sponsor = EXCLUDED.sponsor,
			champion = EXCLUDED.champion,
			next_gate_due = EXCLUDED.next_gate_due,
			dslt_days = EXCLUDED.dslt_days,
			sentiment = EXCLUDED.sentiment,
			volume_7d = EXCLUDED.volume_7d,
			revenue_7d = EXCLUDED.revenue_7d,
			cost_7d = EXCLUDED.cost_7d,
			gm_7d = EXCLUDED.gm_7d,
			qc_pct_7d = EXCLUDED.qc_pct_7d,
			aht_7d = EXCLUDED.aht_7d,
			p95_ms_7d = EXCLUDED.p95_ms_7d,
			automation_7d = EXCLUDED.automation_7d,
			blockers_open = EXCLUDED.blockers_open,
			oldest_blocker_age_d = EXCLUDED.oldest_blocker_age_d,
			escalation_score = EXCLUDED.escalation_score,
			escalation_state = EXCLUDED.escalation_state,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		account.ID,
		account.Name,
		account.Phase,
		account.STOID,
		account.Sponsor,
		account.Champion,
		account.NextGateDue,
		account.DSLTDays,
		account.Sentiment,
		account.Volume7d,
		account.Revenue7d,
		account.Cost7d,
		account.GM7d,
		account.QCPct7d,
		account.AHT7d,
		account.P95Ms7d,
		account.Automation7d,
		account.BlockersOpen,
		account.OldestBlockerAgeD,
		account.EscalationScore,
		account.EscalationState,
		account.Notes,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}

	return nil
}

func (r *accountRepository) GetByName(ctx context.Context, name string) (*domain.Account, error) {
	query, args, err := sq.Select(accountColumns...).
		From("accounts").
		Where(sq.Eq{"name": name}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build account query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrAccountNotFound{Message: "account not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

func (r *accountRepository) List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	qb := sq.Select(accountColumns...).
		From("accounts").
		OrderBy("name ASC").
		PlaceholderFormat(sq.Dollar)

	if filter.Phase != nil {
		qb = qb.Where(sq.Eq{"phase": *filter.Phase})
	}
	if filter.EscalationState != nil {
		qb = qb.Where(sq.Eq{"escalation_state": *filter.EscalationState})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build account list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

func (r *accountRepository) UpdateDSLT(ctx context.Context, accountID string, days int) error {
	query := `UPDATE accounts SET dslt_days = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, days, time.Now().UTC(), accountID)
	if err != nil {
		return fmt.Errorf("failed to update account dslt: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check dslt update: %w", err)
	}
	if affected == 0 {
		return &domain.ErrAccountNotFound{Message: "account not found"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Phase,
		&account.STOID,
		&account.Sponsor,
		&account.Champion,
		&account.NextGateDue,
		&account.DSLTDays,
		&account.Sentiment,
		&account.Volume7d,
		&account.Revenue7d,
		&account.Cost7d,
		&account.GM7d,
		&account.QCPct7d,
		&account.AHT7d,
		&account.P95Ms7d,
		&account.Automation7d,
		&account.BlockersOpen,
		&account.OldestBlockerAgeD,
		&account.EscalationScore,
		&account.EscalationState,
		&account.Notes,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
