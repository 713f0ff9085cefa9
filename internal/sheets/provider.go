// Package sheets appends permit rows to a remote spreadsheet, deduplicated
// against the rows already present there.
package sheets

import "context"

// Provider abstracts the remote spreadsheet so the uploader can be tested
// without credentials and dry runs can discard writes.
type Provider interface {
	// ExistingIDs returns the publication IDs already present remotely.
	ExistingIDs(ctx context.Context) (map[string]struct{}, error)
	// AppendRows appends rows after the current last row, in order.
	AppendRows(ctx context.Context, rows [][]string) error
	// Close releases any underlying resources.
	Close() error
}
