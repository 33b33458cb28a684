package gsheets

import (
	"fmt"
	"strings"
	"time"

	"github.com/forge-os/pulse/internal/domain"
)

// Row-shaping helpers. These operate on the raw cell grid returned by the
// Sheets API and carry the extraction conventions of the account
// spreadsheet template: a fixed-position rollup row, and variable-position
// actions/touches tables found by scanning for their header text. A table
// whose header is missing yields an empty slice, never an error.

func rollupFromValues(row []interface{}) *domain.RollupRow {
	return &domain.RollupRow{
		Account:           cell(row, 0, ""),
		Workflow:          cell(row, 1, domain.DefaultWorkflowName),
		Phase:             cell(row, 2, "0"),
		STO:               cell(row, 3, ""),
		Sponsor:           cell(row, 4, ""),
		Champion:          cell(row, 5, ""),
		Golden10:          cell(row, 6, "false"),
		AccessReady:       cell(row, 7, "false"),
		Volume7d:          cell(row, 8, "0"),
		Revenue7d:         cell(row, 9, "0"),
		Cost7d:            cell(row, 10, "0"),
		QCPct7d:           cell(row, 11, "0"),
		AHT7d:             cell(row, 12, "0"),
		P95Ms7d:           cell(row, 13, "0"),
		Automation7d:      cell(row, 14, "0"),
		BudgetUtil7d:      cell(row, 15, "0"),
		DSLTDays:          cell(row, 16, "0"),
		BlockersOpen:      cell(row, 17, "0"),
		OldestBlockerAgeD: cell(row, 18, "0"),
		Sentiment:         cell(row, 19, ""),
		Notes:             cell(row, 20, ""),
		NextGateDue:       cell(row, 21, ""),
		NextMilestone:     cell(row, 22, ""),
		WGSentiment:       cell(row, 23, ""),
	}
}

// extractActions locates the "Actions / Blockers" table by scanning for a
// header cell containing either word, then shapes every following
// non-empty row. Rows with an empty first cell are skipped.
func extractActions(values [][]interface{}) []domain.ActionRow {
	actions := []domain.ActionRow{}

	headerIdx := findHeader(values, func(text string) bool {
		return strings.Contains(text, "Actions") || strings.Contains(text, "Blockers")
	})
	if headerIdx < 0 {
		return actions
	}

	for _, row := range values[headerIdx+1:] {
		if len(row) == 0 || cell(row, 0, "") == "" {
			continue
		}
		actions = append(actions, domain.ActionRow{
			Title:       cell(row, 0, ""),
			Severity:    cell(row, 1, "sev-2"),
			Status:      cell(row, 2, "open"),
			Responsible: cell(row, 3, ""),
			DueDate:     cell(row, 4, ""),
			OpenedAt:    cell(row, 5, ""),
			SlackLink:   cell(row, 6, ""),
			DocLink:     cell(row, 7, ""),
		})
	}

	return actions
}

// extractTouches applies the same header-scan strategy for the touches
// table, matching any cell containing "touch" case-insensitively.
func extractTouches(values [][]interface{}) []domain.TouchRow {
	touches := []domain.TouchRow{}

	headerIdx := findHeader(values, func(text string) bool {
		return strings.Contains(strings.ToLower(text), "touch")
	})
	if headerIdx < 0 {
		return touches
	}

	for _, row := range values[headerIdx+1:] {
		if len(row) == 0 || cell(row, 0, "") == "" {
			continue
		}
		touches = append(touches, domain.TouchRow{
			TouchedAt: cell(row, 0, time.Now().UTC().Format(time.RFC3339)),
			Actor:     cell(row, 1, ""),
			Channel:   cell(row, 2, "email"),
			Summary:   cell(row, 3, ""),
		})
	}

	return touches
}

func findHeader(values [][]interface{}, match func(string) bool) int {
	for i, row := range values {
		for _, c := range row {
			if c == nil {
				continue
			}
			if match(fmt.Sprintf("%v", c)) {
				return i
			}
		}
	}
	return -1
}

// cell returns the string content of column i, or def when the cell is
// missing or empty.
func cell(row []interface{}, i int, def string) string {
	if i >= len(row) || row[i] == nil {
		return def
	}
	s := fmt.Sprintf("%v", row[i])
	if s == "" {
		return def
	}
	return s
}
