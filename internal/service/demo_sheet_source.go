package service

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/forge-os/pulse/internal/domain"
)

// DemoSheetSource is a drop-in replacement for the real spreadsheet source
// used in environments without Google credentials. It fabricates rollup,
// action and touch rows with realistic ranges for a fixed set of demo
// accounts; spreadsheet IDs are simply the account names.
type DemoSheetSource struct {
	accounts []string
}

var demoAccounts = []string{"SoFi", "Jefferies", "KeyBank", "Coinbase", "Wells Fargo", "Chase"}

var (
	demoPhases     = []string{"0", "1", "2", "3", "4"}
	demoSentiments = []string{"R", "Y", "G"}
	demoChannels   = []string{"exec", "team", "email", "call"}
	demoSeverities = []string{"sev-0", "sev-1", "sev-2"}
	demoStatuses   = []string{"open", "at_risk", "closed"}
	demoActors     = []string{"John STO", "Jane FDE", "Mike PM"}
)

// NewDemoSheetSource creates a synthetic sheet source over the demo
// account list.
func NewDemoSheetSource() *DemoSheetSource {
	return &DemoSheetSource{accounts: demoAccounts}
}

func (s *DemoSheetSource) SpreadsheetIDs(ctx context.Context) ([]string, error) {
	return append([]string(nil), s.accounts...), nil
}

func (s *DemoSheetSource) SheetData(ctx context.Context, spreadsheetID string) (*domain.SheetData, error) {
	accountName := spreadsheetID
	now := time.Now().UTC()

	phase := pick(demoPhases)
	sentiment := pick(demoSentiments)

	rollup := &domain.RollupRow{
		Account:           accountName,
		Workflow:          domain.DefaultWorkflowName,
		Phase:             phase,
		STO:               "sto@forge-os.com",
		Sponsor:           "John Sponsor",
		Champion:          "Jane Champion",
		Golden10:          randomBool(),
		AccessReady:       randomBool(),
		Volume7d:          strconv.Itoa(rand.Intn(10000)),
		Revenue7d:         strconv.Itoa(rand.Intn(50000)),
		Cost7d:            strconv.Itoa(rand.Intn(30000)),
		QCPct7d:           fmt.Sprintf("%.2f", 0.9+rand.Float64()*0.1),
		AHT7d:             fmt.Sprintf("%.0f", 100+rand.Float64()*200),
		P95Ms7d:           fmt.Sprintf("%.0f", 200+rand.Float64()*800),
		Automation7d:      fmt.Sprintf("%.2f", rand.Float64()*0.5),
		BudgetUtil7d:      fmt.Sprintf("%.2f", 0.5+rand.Float64()*0.5),
		DSLTDays:          strconv.Itoa(rand.Intn(10)),
		BlockersOpen:      strconv.Itoa(rand.Intn(5)),
		OldestBlockerAgeD: strconv.Itoa(rand.Intn(30)),
		Sentiment:         sentiment,
		Notes:             fmt.Sprintf("%s is progressing through phase %s", accountName, phase),
		NextGateDue:       now.Add(30 * 24 * time.Hour).Format(time.RFC3339),
		NextMilestone:     "Complete integration testing",
		WGSentiment:       sentiment,
	}

	numActions := rand.Intn(5) + 1
	actions := make([]domain.ActionRow, 0, numActions)
	for i := 0; i < numActions; i++ {
		actions = append(actions, domain.ActionRow{
			Title:       fmt.Sprintf("Action item %d for %s", i+1, accountName),
			Severity:    pick(demoSeverities),
			Status:      pick(demoStatuses),
			Responsible: "Team Lead",
			DueDate:     now.Add(time.Duration(7+i*7) * 24 * time.Hour).Format(time.RFC3339),
			OpenedAt:    now.Add(-time.Duration(i*7) * 24 * time.Hour).Format(time.RFC3339),
			SlackLink:   fmt.Sprintf("https://slack.com/archives/C123456/p%d", now.UnixMilli()),
			DocLink:     fmt.Sprintf("https://docs.google.com/document/d/abc%d", i),
		})
	}

	numTouches := rand.Intn(10) + 5
	touches := make([]domain.TouchRow, 0, numTouches)
	for i := 0; i < numTouches; i++ {
		touches = append(touches, domain.TouchRow{
			TouchedAt: now.Add(-time.Duration(i*2) * 24 * time.Hour).Format(time.RFC3339),
			Actor:     pick(demoActors),
			Channel:   pick(demoChannels),
			Summary:   fmt.Sprintf("Follow up on %s progress", accountName),
		})
	}

	return &domain.SheetData{
		Rollup:    rollup,
		Actions:   actions,
		Touches:   touches,
		SheetName: accountName,
	}, nil
}

func pick(slice []string) string {
	return slice[rand.Intn(len(slice))]
}

func randomBool() string {
	if rand.Float64() > 0.5 {
		return "true"
	}
	return "false"
}
