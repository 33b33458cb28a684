package service

import (
	"context"
	"fmt"
	"time"

	"github.com/forge-os/pulse/internal/domain"
	"github.com/forge-os/pulse/pkg/logger"
)

// IngestionService pulls semi-structured rows from the configured sheet
// source, reconciles them against persisted entities via idempotent
// upserts, derives the escalation score and refreshes the freshness
// metric. Sources are independent failure domains: one bad spreadsheet is
// recorded as an error string and the run continues, but any error marks
// the whole run unsuccessful.
type IngestionService struct {
	userRepo      domain.UserRepository
	accountRepo   domain.AccountRepository
	workflowRepo  domain.WorkflowRepository
	actionRepo    domain.ActionRepository
	touchRepo     domain.TouchRepository
	sourceRepo    domain.IngestionSourceRepository
	sheets        domain.SheetSource
	adminEmails   []string
	sourceTimeout time.Duration
	logger        logger.Logger
	now           func() time.Time
}

// NewIngestionService creates the ingestion orchestrator.
func NewIngestionService(
	userRepo domain.UserRepository,
	accountRepo domain.AccountRepository,
	workflowRepo domain.WorkflowRepository,
	actionRepo domain.ActionRepository,
	touchRepo domain.TouchRepository,
	sourceRepo domain.IngestionSourceRepository,
	sheets domain.SheetSource,
	adminEmails []string,
	sourceTimeout time.Duration,
	log logger.Logger,
) *IngestionService {
	return &IngestionService{
		userRepo:      userRepo,
		accountRepo:   accountRepo,
		workflowRepo:  workflowRepo,
		actionRepo:    actionRepo,
		touchRepo:     touchRepo,
		sourceRepo:    sourceRepo,
		sheets:        sheets,
		adminEmails:   adminEmails,
		sourceTimeout: sourceTimeout,
		logger:        log,
		now:           time.Now,
	}
}

// RunIngestion processes every configured spreadsheet sequentially and
// returns the aggregated result. It never returns an error: failures are
// accumulated in the result's error list.
func (s *IngestionService) RunIngestion(ctx context.Context) *domain.IngestionResult {
	result := &domain.IngestionResult{
		Errors:    []string{},
		Timestamp: s.now().UTC(),
	}

	spreadsheetIDs, err := s.sheets.SpreadsheetIDs(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("fatal error: %v", err))
		return result
	}
	if len(spreadsheetIDs) == 0 {
		result.Errors = append(result.Errors, "no spreadsheet IDs configured")
		return result
	}

	for _, spreadsheetID := range spreadsheetIDs {
		sourceCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
		err := s.processSource(sourceCtx, spreadsheetID, result)
		cancel()
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"spreadsheet_id": spreadsheetID,
				"error":          err.Error(),
			}).Warn("Spreadsheet processing failed")
			result.Errors = append(result.Errors, fmt.Sprintf("error processing %s: %v", spreadsheetID, err))
		}
	}

	result.Success = len(result.Errors) == 0

	status := domain.RunStatusFailed
	if result.Success {
		status = domain.RunStatusSuccess
	}
	for _, spreadsheetID := range spreadsheetIDs {
		if err := s.sourceRepo.RecordRun(ctx, spreadsheetID, result.Timestamp, status); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("fatal error: %v", err))
			result.Success = false
			break
		}
	}

	return result
}

// processSource runs the full upsert chain for one spreadsheet. A missing
// rollup row is recorded directly on the result and skips the source; any
// returned error is attributed to the source by the caller.
func (s *IngestionService) processSource(ctx context.Context, spreadsheetID string, result *domain.IngestionResult) error {
	data, err := s.sheets.SheetData(ctx, spreadsheetID)
	if err != nil {
		return fmt.Errorf("failed to fetch sheet data: %w", err)
	}
	if data.Rollup == nil {
		result.Errors = append(result.Errors, fmt.Sprintf("no rollup data found in %s", spreadsheetID))
		return nil
	}
	rollup := data.Rollup
	now := s.now().UTC()

	// Resolve the owning STO user. Role comes from the allow-list but only
	// sticks on creation; the repository keeps the stored role on update.
	stoUser := &domain.User{
		Email: rollup.STO,
		Name:  domain.NameFromEmail(rollup.STO),
		Role:  s.roleFor(rollup.STO),
	}
	if err := s.userRepo.Upsert(ctx, stoUser); err != nil {
		return fmt.Errorf("failed to upsert sto user: %w", err)
	}

	phase := domain.ParsePhase(rollup.Phase)
	dsltDays := int(domain.ParseNumber(rollup.DSLTDays, 0))
	blockersOpen := int(domain.ParseNumber(rollup.BlockersOpen, 0))
	oldestBlockerAgeD := int(domain.ParseNumber(rollup.OldestBlockerAgeD, 0))
	qcPct7d := domain.ParseNumber(rollup.QCPct7d, 0)
	automation7d := domain.ParseNumber(rollup.Automation7d, 0)

	score, state := domain.CalculateEscalationScore(domain.EscalationInput{
		Phase:        phase,
		Sentiment:    rollup.Sentiment,
		DSLTDays:     dsltDays,
		BlockersOpen: blockersOpen,
		QCPct7d:      qcPct7d,
		Automation7d: automation7d,
	})

	revenue7d := domain.ParseNumber(rollup.Revenue7d, 0)
	cost7d := domain.ParseNumber(rollup.Cost7d, 0)
	gm7d := 0.0
	if revenue7d > 0 {
		gm7d = (revenue7d - cost7d) / revenue7d
	}

	account := &domain.Account{
		Name:              rollup.Account,
		Phase:             phase,
		STOID:             stoUser.ID,
		Sponsor:           optString(rollup.Sponsor),
		Champion:          optString(rollup.Champion),
		NextGateDue:       domain.ParseDate(rollup.NextGateDue),
		DSLTDays:          dsltDays,
		Sentiment:         optString(rollup.Sentiment),
		Volume7d:          domain.ParseNumber(rollup.Volume7d, 0),
		Revenue7d:         revenue7d,
		Cost7d:            cost7d,
		GM7d:              gm7d,
		QCPct7d:           qcPct7d,
		AHT7d:             domain.ParseNumber(rollup.AHT7d, 0),
		P95Ms7d:           domain.ParseNumber(rollup.P95Ms7d, 0),
		Automation7d:      automation7d,
		BlockersOpen:      blockersOpen,
		OldestBlockerAgeD: oldestBlockerAgeD,
		EscalationScore:   score,
		EscalationState:   state,
		Notes:             optString(rollup.Notes),
	}
	if err := s.accountRepo.Upsert(ctx, account); err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}
	result.AccountsProcessed++

	workflowName := rollup.Workflow
	if workflowName == "" {
		workflowName = domain.DefaultWorkflowName
	}
	workflow := &domain.Workflow{
		AccountID:     account.ID,
		Name:          workflowName,
		Phase:         phase,
		Golden10:      domain.ParseBool(rollup.Golden10),
		AccessReady:   domain.ParseBool(rollup.AccessReady),
		Volume7d:      domain.ParseNumber(rollup.Volume7d, 0),
		QCPct7d:       qcPct7d,
		AHT7d:         domain.ParseNumber(rollup.AHT7d, 0),
		P95Ms7d:       domain.ParseNumber(rollup.P95Ms7d, 0),
		Automation7d:  automation7d,
		BudgetUtil7d:  domain.ParseNumber(rollup.BudgetUtil7d, 0),
		NextMilestone: optString(rollup.NextMilestone),
		WGSentiment:   optString(rollup.WGSentiment),
	}
	if err := s.workflowRepo.Upsert(ctx, workflow); err != nil {
		return fmt.Errorf("failed to upsert workflow: %w", err)
	}

	for _, actionRow := range data.Actions {
		openedAt := now
		if parsed := domain.ParseDate(actionRow.OpenedAt); parsed != nil {
			openedAt = *parsed
		}

		action := &domain.Action{
			AccountID:   account.ID,
			Title:       actionRow.Title,
			Severity:    domain.ActionSeverity(actionRow.Severity),
			Status:      domain.ActionStatus(actionRow.Status),
			Responsible: actionRow.Responsible,
			DueDate:     domain.ParseDate(actionRow.DueDate),
			OpenedAt:    openedAt,
			LastUpdate:  now,
			SlackLink:   optString(actionRow.SlackLink),
			DocLink:     optString(actionRow.DocLink),
			AgeD:        daysBetween(now, openedAt),
		}
		if err := s.actionRepo.Upsert(ctx, action); err != nil {
			return fmt.Errorf("failed to upsert action %q: %w", actionRow.Title, err)
		}
		result.ActionsProcessed++
	}

	for _, touchRow := range data.Touches {
		touchedAt := now
		if parsed := domain.ParseDate(touchRow.TouchedAt); parsed != nil {
			touchedAt = *parsed
		}

		touch := &domain.Touch{
			AccountID: account.ID,
			TouchedAt: touchedAt,
			Actor:     touchRow.Actor,
			Channel:   touchRow.Channel,
			Summary:   optString(touchRow.Summary),
		}
		if err := s.touchRepo.Upsert(ctx, touch); err != nil {
			return fmt.Errorf("failed to upsert touch: %w", err)
		}
		result.TouchesProcessed++
	}

	return s.refreshDSLT(ctx, account.ID, now)
}

// refreshDSLT recomputes days-since-last-touch from the later of the
// latest touch and the latest action update. Accounts with neither keep
// the value written by the account upsert.
func (s *IngestionService) refreshDSLT(ctx context.Context, accountID string, now time.Time) error {
	lastTouch, err := s.touchRepo.GetLatestByAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to load latest touch: %w", err)
	}
	lastAction, err := s.actionRepo.GetLatestByAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to load latest action: %w", err)
	}

	var lastActivity *time.Time
	switch {
	case lastTouch != nil && lastAction != nil:
		if lastTouch.TouchedAt.After(lastAction.LastUpdate) {
			lastActivity = &lastTouch.TouchedAt
		} else {
			lastActivity = &lastAction.LastUpdate
		}
	case lastTouch != nil:
		lastActivity = &lastTouch.TouchedAt
	case lastAction != nil:
		lastActivity = &lastAction.LastUpdate
	}

	if lastActivity == nil {
		return nil
	}
	if err := s.accountRepo.UpdateDSLT(ctx, accountID, daysBetween(now, *lastActivity)); err != nil {
		return fmt.Errorf("failed to refresh dslt: %w", err)
	}
	return nil
}

func (s *IngestionService) roleFor(email string) domain.UserRole {
	for _, admin := range s.adminEmails {
		if admin == email {
			return domain.RoleAdmin
		}
	}
	return domain.RoleViewer
}

// daysBetween counts whole days from then to now, truncating toward zero.
func daysBetween(now, then time.Time) int {
	return int(now.Sub(then).Hours() / 24)
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
