package domain

import "context"

// RollupRow is the raw, untyped rollup line of one account spreadsheet.
// All fields are cell strings; parsing happens downstream so that one
// malformed cell degrades to a default instead of failing the account.
type RollupRow struct {
	Account           string
	Workflow          string
	Phase             string
	STO               string
	Sponsor           string
	Champion          string
	Golden10          string
	AccessReady       string
	Volume7d          string
	Revenue7d         string
	Cost7d            string
	QCPct7d           string
	AHT7d             string
	P95Ms7d           string
	Automation7d      string
	BudgetUtil7d      string
	DSLTDays          string
	BlockersOpen      string
	OldestBlockerAgeD string
	Sentiment         string
	Notes             string
	NextGateDue       string
	NextMilestone     string
	WGSentiment       string
}

// ActionRow is one raw line of the "Actions / Blockers" table.
type ActionRow struct {
	Title       string
	Severity    string
	Status      string
	Responsible string
	DueDate     string
	OpenedAt    string
	SlackLink   string
	DocLink     string
}

// TouchRow is one raw line of the touches table.
type TouchRow struct {
	TouchedAt string
	Actor     string
	Channel   string
	Summary   string
}

// SheetData is everything extracted from one spreadsheet. Rollup is nil
// when the sheet had no rollup row; the tables are empty slices when their
// headers were not found.
type SheetData struct {
	Rollup    *RollupRow
	Actions   []ActionRow
	Touches   []TouchRow
	SheetName string
}

// SheetSource provides raw row data per spreadsheet. The ingestion
// orchestrator does not know whether rows come from a live spreadsheet or
// a synthetic generator.
type SheetSource interface {
	// SpreadsheetIDs enumerates the spreadsheets to ingest.
	SpreadsheetIDs(ctx context.Context) ([]string, error)

	// SheetData fetches the rollup row and variable tables of one
	// spreadsheet.
	SheetData(ctx context.Context, spreadsheetID string) (*SheetData, error)
}
