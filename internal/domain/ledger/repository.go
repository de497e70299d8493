package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines persistence operations for the Customer aggregate.
// Customers are created once and never deleted; mutation happens only through
// ledger transactions applied with Update.
type CustomerRepository interface {
	// Save inserts a new customer
	Save(ctx context.Context, customer *Customer) error
	// FindByID finds a customer by its ID, returning shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	// FindAll returns all customers ordered by creation time
	FindAll(ctx context.Context) ([]Customer, error)
	// Update applies fn to the live customer as an atomic read-modify-write,
	// so a manual posting and a concurrent checkout never lose an update.
	// Returns shared.ErrNotFound when the customer is absent.
	Update(ctx context.Context, id uuid.UUID, fn func(customer *Customer) error) error
	// TotalOutstandingDebt sums CurrentDebt across all customers.
	// Negative balances (overpayments) are included, not clamped.
	TotalOutstandingDebt(ctx context.Context) (decimal.Decimal, error)
}
