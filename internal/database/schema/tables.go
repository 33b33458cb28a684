package schema

// TableDefinitions contains the DDL for every table in the system
// database. Natural keys (account name, user email, the composite action
// and touch tuples, spreadsheet IDs) are enforced as UNIQUE constraints on
// top of surrogate UUID primary keys.
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(32) NOT NULL DEFAULT 'viewer',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		phase VARCHAR(32) NOT NULL,
		sto_id UUID NOT NULL REFERENCES users(id),
		sponsor VARCHAR(255),
		champion VARCHAR(255),
		next_gate_due TIMESTAMP,
		dslt_days INTEGER NOT NULL DEFAULT 0,
		sentiment VARCHAR(8),
		volume_7d DECIMAL NOT NULL DEFAULT 0,
		revenue_7d DECIMAL NOT NULL DEFAULT 0,
		cost_7d DECIMAL NOT NULL DEFAULT 0,
		gm_7d DECIMAL NOT NULL DEFAULT 0,
		qc_pct_7d DECIMAL NOT NULL DEFAULT 0,
		aht_7d DECIMAL NOT NULL DEFAULT 0,
		p95_ms_7d DECIMAL NOT NULL DEFAULT 0,
		automation_7d DECIMAL NOT NULL DEFAULT 0,
		blockers_open INTEGER NOT NULL DEFAULT 0,
		oldest_blocker_age_d INTEGER NOT NULL DEFAULT 0,
		escalation_score INTEGER NOT NULL DEFAULT 0,
		escalation_state VARCHAR(16) NOT NULL DEFAULT 'none',
		notes TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS workflows (
		id UUID PRIMARY KEY,
		account_id UUID NOT NULL REFERENCES accounts(id),
		name VARCHAR(255) NOT NULL,
		phase VARCHAR(32) NOT NULL,
		golden10 BOOLEAN NOT NULL DEFAULT FALSE,
		access_ready BOOLEAN NOT NULL DEFAULT FALSE,
		volume_7d DECIMAL NOT NULL DEFAULT 0,
		qc_pct_7d DECIMAL NOT NULL DEFAULT 0,
		aht_7d DECIMAL NOT NULL DEFAULT 0,
		p95_ms_7d DECIMAL NOT NULL DEFAULT 0,
		automation_7d DECIMAL NOT NULL DEFAULT 0,
		budget_util_7d DECIMAL NOT NULL DEFAULT 0,
		next_milestone VARCHAR(255),
		wg_sentiment VARCHAR(8),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (account_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS actions (
		id UUID PRIMARY KEY,
		account_id UUID NOT NULL REFERENCES accounts(id),
		title VARCHAR(512) NOT NULL,
		severity VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL,
		responsible VARCHAR(255) NOT NULL DEFAULT '',
		due_date TIMESTAMP,
		opened_at TIMESTAMP NOT NULL,
		last_update TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		slack_link VARCHAR(1024),
		doc_link VARCHAR(1024),
		age_d INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (account_id, title, opened_at)
	)`,
	`CREATE TABLE IF NOT EXISTS touches (
		id UUID PRIMARY KEY,
		account_id UUID NOT NULL REFERENCES accounts(id),
		touched_at TIMESTAMP NOT NULL,
		actor VARCHAR(255) NOT NULL,
		channel VARCHAR(64) NOT NULL,
		summary TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (account_id, touched_at, actor, channel)
	)`,
	`CREATE TABLE IF NOT EXISTS ingestion_sources (
		id UUID PRIMARY KEY,
		account_name VARCHAR(255) NOT NULL,
		spreadsheet_id VARCHAR(255) NOT NULL UNIQUE,
		tab VARCHAR(255),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		last_run_at TIMESTAMP,
		last_status VARCHAR(16),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_actions_account_last_update ON actions (account_id, last_update DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_touches_account_touched_at ON touches (account_id, touched_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_escalation_state ON accounts (escalation_state)`,
}
