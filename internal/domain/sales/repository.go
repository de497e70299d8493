package sales

import "context"

// SaleRepository is the append-only sales journal. Sales are appended by the
// checkout coordinator and never mutated or removed afterwards.
type SaleRepository interface {
	// Append adds a completed sale to the journal
	Append(ctx context.Context, sale *Sale) error
	// FindAll returns all sales in chronological order
	FindAll(ctx context.Context) ([]Sale, error)
	// FindRecent returns the last n sales in chronological order
	FindRecent(ctx context.Context, n int) ([]Sale, error)
}
