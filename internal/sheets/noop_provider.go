package sheets

import (
	"context"

	"go.uber.org/zap"
)

// NoOpProvider discards uploads. Useful for dry runs and local testing
// without a credential.
type NoOpProvider struct {
	Logger *zap.Logger
}

// ExistingIDs reports an empty spreadsheet.
func (p *NoOpProvider) ExistingIDs(context.Context) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

// AppendRows logs and drops the rows.
func (p *NoOpProvider) AppendRows(_ context.Context, rows [][]string) error {
	if p.Logger != nil {
		p.Logger.Info("No-Op sheets provider discarding rows", zap.Int("rows", len(rows)))
	}
	return nil
}

// Close is a no-op.
func (p *NoOpProvider) Close() error {
	return nil
}
