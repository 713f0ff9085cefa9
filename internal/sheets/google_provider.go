package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleProvider talks to the Google Sheets API using a service-account
// credential. Credential lifecycle is external; this only consumes a
// ready-to-use credentials file.
type GoogleProvider struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleProvider builds the Sheets service. A bad credential or
// unreachable API fails here, failing the run before any write happens.
func NewGoogleProvider(ctx context.Context, credentialsFile, spreadsheetID, sheetRange string, logger *zap.Logger) (*GoogleProvider, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("sheets provider is 'google' but sheets.credentials_file is not set")
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets provider is 'google' but sheets.spreadsheet_id is not set")
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &GoogleProvider{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetRange:    sheetRange,
		logger:        logger,
	}, nil
}

// ExistingIDs reads the first column of the configured range. The header
// cell, if present, rides along harmlessly since no publication ID collides
// with it.
func (p *GoogleProvider) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	resp, err := p.svc.Spreadsheets.Values.Get(p.spreadsheetID, p.sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet values: %w", err)
	}

	ids := make(map[string]struct{}, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if id := fmt.Sprint(row[0]); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// AppendRows appends after the last data row of the range.
func (p *GoogleProvider) AppendRows(ctx context.Context, rows [][]string) error {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	_, err := p.svc.Spreadsheets.Values.
		Append(p.spreadsheetID, p.sheetRange, &sheetsapi.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append spreadsheet rows: %w", err)
	}

	p.logger.Info("Appended rows to spreadsheet",
		zap.String("spreadsheet_id", p.spreadsheetID),
		zap.Int("rows", len(rows)))
	return nil
}

// Close satisfies Provider; the Sheets service holds no connection state.
func (p *GoogleProvider) Close() error {
	return nil
}
