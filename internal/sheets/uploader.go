package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bauradar/baugesuche-crawler/internal/permit"
)

// Uploader appends the CSV sink's rows to the remote spreadsheet, skipping
// rows whose publication ID is already present there. Rows appended before
// a mid-run failure stay appended; the dedupe read makes the next run pick
// up where this one stopped (at-least-once, not exactly-once).
type Uploader struct {
	provider Provider
	logger   *zap.Logger
}

// NewUploader wires an uploader to a provider.
func NewUploader(provider Provider, logger *zap.Logger) *Uploader {
	return &Uploader{provider: provider, logger: logger}
}

// Upload reads the CSV at path and appends its missing data rows in file
// order. It returns the number of rows appended. An unreadable CSV, a
// failed remote read, or a failed append fails the run.
func (u *Uploader) Upload(ctx context.Context, csvPath string) (int, error) {
	header, rows, err := permit.ReadRows(csvPath)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		u.logger.Info("CSV has no data rows; nothing to upload", zap.String("path", csvPath))
		return 0, nil
	}
	if len(header) == 0 || header[0] != permit.Header()[0] {
		u.logger.Warn("CSV header does not start with publication_id; dedupe may misbehave",
			zap.Strings("header", header))
	}

	existing, err := u.provider.ExistingIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("read remote rows: %w", err)
	}

	pending := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if _, dup := existing[row[0]]; dup {
			continue
		}
		existing[row[0]] = struct{}{}
		pending = append(pending, row)
	}

	if len(pending) == 0 {
		u.logger.Info("Spreadsheet already up to date",
			zap.String("path", csvPath),
			zap.Int("csv_rows", len(rows)))
		return 0, nil
	}

	if err := u.provider.AppendRows(ctx, pending); err != nil {
		return 0, err
	}

	u.logger.Info("Upload complete",
		zap.String("path", csvPath),
		zap.Int("csv_rows", len(rows)),
		zap.Int("appended", len(pending)))
	return len(pending), nil
}
