package memory

import (
	"context"
	"sync"

	"github.com/tiendafacil/backend/internal/domain/sales"
)

// SaleRepository is an in-memory, append-only implementation of
// sales.SaleRepository. Entries are stored in append order, which is
// chronological because only the serialized checkout writes here.
type SaleRepository struct {
	mu      sync.RWMutex
	journal []sales.Sale
}

// NewSaleRepository creates an empty in-memory sales journal
func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

func cloneSale(sale *sales.Sale) sales.Sale {
	clone := *sale
	clone.Items = make([]sales.SaleItem, len(sale.Items))
	copy(clone.Items, sale.Items)
	if sale.CustomerID != nil {
		id := *sale.CustomerID
		clone.CustomerID = &id
	}
	return clone
}

// Append adds a completed sale to the journal
func (r *SaleRepository) Append(_ context.Context, sale *sales.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.journal = append(r.journal, cloneSale(sale))
	return nil
}

// FindAll returns all sales in chronological order
func (r *SaleRepository) FindAll(_ context.Context) ([]sales.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	journal := make([]sales.Sale, 0, len(r.journal))
	for i := range r.journal {
		journal = append(journal, cloneSale(&r.journal[i]))
	}
	return journal, nil
}

// FindRecent returns the last n sales in chronological order
func (r *SaleRepository) FindRecent(_ context.Context, n int) ([]sales.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := 0
	if len(r.journal) > n {
		start = len(r.journal) - n
	}
	journal := make([]sales.Sale, 0, len(r.journal)-start)
	for i := start; i < len(r.journal); i++ {
		journal = append(journal, cloneSale(&r.journal[i]))
	}
	return journal, nil
}

// Replace swaps the whole journal content, used when restoring a
// snapshot at session start
func (r *SaleRepository) Replace(_ context.Context, journal []sales.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.journal = make([]sales.Sale, 0, len(journal))
	for i := range journal {
		r.journal = append(r.journal, cloneSale(&journal[i]))
	}
	return nil
}

var _ sales.SaleRepository = (*SaleRepository)(nil)
