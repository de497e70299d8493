package sales

import (
	"context"

	"github.com/tiendafacil/backend/internal/domain/sales"
	"github.com/tiendafacil/backend/internal/domain/shared"
)

// JournalService exposes read access to the sales journal.
// Writing to the journal is reserved for the checkout coordinator.
type JournalService struct {
	saleRepo sales.SaleRepository
}

// NewJournalService creates a new JournalService
func NewJournalService(saleRepo sales.SaleRepository) *JournalService {
	return &JournalService{saleRepo: saleRepo}
}

// List returns all journaled sales in chronological order
func (s *JournalService) List(ctx context.Context) ([]SaleResponse, error) {
	saleList, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(saleList), nil
}

// Recent returns the last n sales in chronological order
func (s *JournalService) Recent(ctx context.Context, n int) ([]SaleResponse, error) {
	if n <= 0 {
		return nil, shared.NewDomainError("INVALID_LIMIT", "Limit must be positive")
	}
	saleList, err := s.saleRepo.FindRecent(ctx, n)
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(saleList), nil
}
