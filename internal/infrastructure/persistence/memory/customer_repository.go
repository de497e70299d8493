package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/ledger"
	"github.com/tiendafacil/backend/internal/domain/shared"
)

// CustomerRepository is an in-memory implementation of
// ledger.CustomerRepository. Update runs under the write lock so manual
// postings and checkout debt postings are applied against the live
// balance, never a stale copy.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*ledger.Customer
	order     []uuid.UUID
}

// NewCustomerRepository creates an empty in-memory customer repository
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[uuid.UUID]*ledger.Customer),
	}
}

func cloneCustomer(customer *ledger.Customer) *ledger.Customer {
	clone := *customer
	clone.History = make([]ledger.Transaction, len(customer.History))
	copy(clone.History, customer.History)
	return &clone
}

// Save inserts a new customer
func (r *CustomerRepository) Save(_ context.Context, customer *ledger.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[customer.ID]; !exists {
		r.order = append(r.order, customer.ID)
	}
	r.customers[customer.ID] = cloneCustomer(customer)
	return nil
}

// FindByID finds a customer by its ID
func (r *CustomerRepository) FindByID(_ context.Context, id uuid.UUID) (*ledger.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneCustomer(customer), nil
}

// FindAll returns all customers in creation order
func (r *CustomerRepository) FindAll(_ context.Context) ([]ledger.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]ledger.Customer, 0, len(r.order))
	for _, id := range r.order {
		customers = append(customers, *cloneCustomer(r.customers[id]))
	}
	return customers, nil
}

// Update applies fn to the stored customer under the write lock
func (r *CustomerRepository) Update(_ context.Context, id uuid.UUID, fn func(customer *ledger.Customer) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[id]
	if !ok {
		return shared.ErrNotFound
	}

	clone := cloneCustomer(customer)
	if err := fn(clone); err != nil {
		return err
	}
	r.customers[id] = clone
	return nil
}

// TotalOutstandingDebt sums CurrentDebt across all customers
func (r *CustomerRepository) TotalOutstandingDebt(_ context.Context) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := decimal.Zero
	for _, customer := range r.customers {
		total = total.Add(customer.CurrentDebt)
	}
	return total, nil
}

// Replace swaps the whole repository content, used when restoring a
// snapshot at session start
func (r *CustomerRepository) Replace(_ context.Context, customers []ledger.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers = make(map[uuid.UUID]*ledger.Customer, len(customers))
	r.order = make([]uuid.UUID, 0, len(customers))
	for i := range customers {
		r.customers[customers[i].ID] = cloneCustomer(&customers[i])
		r.order = append(r.order, customers[i].ID)
	}
	return nil
}

var _ ledger.CustomerRepository = (*CustomerRepository)(nil)
