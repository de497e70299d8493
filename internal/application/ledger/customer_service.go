package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/ledger"
)

// CustomerService handles customer and credit ledger operations
type CustomerService struct {
	customerRepo ledger.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo ledger.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create registers a new customer with zero debt
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := ledger.NewCustomer(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// PostTransaction records a manual debt or payment against a customer.
// The posting runs as an atomic read-modify-write against the live balance,
// so it never interleaves badly with a concurrent credit checkout.
func (s *CustomerService) PostTransaction(ctx context.Context, customerID uuid.UUID, req PostTransactionRequest) (*TransactionResponse, error) {
	var posted *ledger.Transaction
	err := s.customerRepo.Update(ctx, customerID, func(customer *ledger.Customer) error {
		tx, err := customer.PostTransaction(req.Amount, ledger.TransactionKind(req.Kind), req.Description)
		if err != nil {
			return err
		}
		posted = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToTransactionResponse(posted)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves all customers
func (s *CustomerService) List(ctx context.Context) ([]CustomerResponse, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// TotalOutstandingDebt sums the running balances of every customer.
// Overpaid (negative) balances are included as-is.
func (s *CustomerService) TotalOutstandingDebt(ctx context.Context) (decimal.Decimal, error) {
	return s.customerRepo.TotalOutstandingDebt(ctx)
}
