package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/shared"
)

// Customer represents a store customer with a running credit ("fiado")
// balance. It is the aggregate root for ledger operations: the debt is
// mutated exclusively through PostTransaction so that CurrentDebt stays
// equal to the signed sum of History at every point.
type Customer struct {
	shared.BaseEntity
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	CurrentDebt decimal.Decimal `json:"current_debt"`
	History     []Transaction   `json:"history"`
}

// NewCustomer creates a new customer with zero debt and empty history
func NewCustomer(name, phone string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}

	return &Customer{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Phone:       phone,
		CurrentDebt: decimal.Zero,
		History:     make([]Transaction, 0),
	}, nil
}

// PostTransaction appends an immutable ledger entry and adjusts the running
// debt. A payment larger than the outstanding debt is allowed and leaves a
// negative balance: credit the store owes back to the customer.
func (c *Customer) PostTransaction(amount decimal.Decimal, kind TransactionKind, description string) (*Transaction, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Transaction kind must be debt or payment")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	tx := Transaction{
		ID:          uuid.New(),
		Timestamp:   time.Now(),
		Amount:      amount,
		Kind:        kind,
		Description: description,
	}

	c.History = append(c.History, tx)
	c.CurrentDebt = c.CurrentDebt.Add(tx.SignedAmount())
	c.UpdatedAt = tx.Timestamp

	return &tx, nil
}

// HistoryBalance recomputes the debt from the full history.
// Used by tests and consistency checks; equal to CurrentDebt by invariant.
func (c *Customer) HistoryBalance() decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range c.History {
		balance = balance.Add(tx.SignedAmount())
	}
	return balance
}

// HasDebt reports whether the customer currently owes money
func (c *Customer) HasDebt() bool {
	return c.CurrentDebt.IsPositive()
}
