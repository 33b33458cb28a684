package gsheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/forge-os/pulse/internal/domain"
)

// Cell ranges of the account spreadsheet layout. The rollup row lives at a
// fixed position; the actions and touches tables move around and are
// located by header scan instead.
const (
	rollupRange  = "A3:AB3"
	actionsRange = "A:K"
	touchesRange = "M:Q"
)

// Config holds service-account credentials and source selection for the
// Sheets client.
type Config struct {
	ServiceAccountEmail string
	PrivateKey          string
	SheetIDs            []string
	DriveFolderID       string
}

// Client reads account spreadsheets through the Google Sheets and Drive
// APIs. It implements domain.SheetSource.
type Client struct {
	sheets        *sheets.Service
	drive         *drive.Service
	sheetIDs      []string
	driveFolderID string
}

// New builds a Sheets/Drive client authenticated as the configured service
// account.
func New(ctx context.Context, cfg Config) (*Client, error) {
	conf := &jwt.Config{
		Email: cfg.ServiceAccountEmail,
		// Keys arrive through env config with literal \n sequences.
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		TokenURL:   google.JWTTokenURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/spreadsheets.readonly",
			"https://www.googleapis.com/auth/drive.readonly",
		},
	}
	httpClient := conf.Client(ctx)

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	driveService, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{
		sheets:        sheetsService,
		drive:         driveService,
		sheetIDs:      cfg.SheetIDs,
		driveFolderID: cfg.DriveFolderID,
	}, nil
}

// SpreadsheetIDs returns the explicitly configured sheet IDs, or
// enumerates all spreadsheet files in the configured Drive folder.
func (c *Client) SpreadsheetIDs(ctx context.Context) ([]string, error) {
	if len(c.sheetIDs) > 0 {
		return c.sheetIDs, nil
	}
	if c.driveFolderID == "" {
		return nil, nil
	}

	query := fmt.Sprintf("'%s' in parents and mimeType='application/vnd.google-apps.spreadsheet'", c.driveFolderID)
	list, err := c.drive.Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list spreadsheets in folder: %w", err)
	}

	ids := make([]string, 0, len(list.Files))
	for _, file := range list.Files {
		if file.Id != "" {
			ids = append(ids, file.Id)
		}
	}
	return ids, nil
}

// SheetData reads the rollup row and locates the actions and touches
// tables of one spreadsheet. Read failures are returned to the caller,
// which attributes them to the source; only a sheet that reads fine but
// has no rollup row yields a nil Rollup.
func (c *Client) SheetData(ctx context.Context, spreadsheetID string) (*domain.SheetData, error) {
	meta, err := c.sheets.Spreadsheets.Get(spreadsheetID).
		Fields("properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}
	sheetName := "Unknown"
	if meta.Properties != nil && meta.Properties.Title != "" {
		sheetName = meta.Properties.Title
	}

	rollupValues, err := c.values(ctx, spreadsheetID, rollupRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read rollup row: %w", err)
	}
	var rollup *domain.RollupRow
	if len(rollupValues) > 0 && len(rollupValues[0]) > 0 {
		rollup = rollupFromValues(rollupValues[0])
	}

	actionValues, err := c.values(ctx, spreadsheetID, actionsRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read actions range: %w", err)
	}
	touchValues, err := c.values(ctx, spreadsheetID, touchesRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read touches range: %w", err)
	}

	return &domain.SheetData{
		Rollup:    rollup,
		Actions:   extractActions(actionValues),
		Touches:   extractTouches(touchValues),
		SheetName: sheetName,
	}, nil
}

func (c *Client) values(ctx context.Context, spreadsheetID, cellRange string) ([][]interface{}, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(spreadsheetID, cellRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

var _ domain.SheetSource = (*Client)(nil)
