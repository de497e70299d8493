package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/ledger"
)

// CreateCustomerRequest carries the fields for a new customer
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// PostTransactionRequest carries a manual ledger posting ("fiar" or "pagar")
type PostTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Kind        string          `json:"kind" binding:"required,oneof=debt payment"`
	Description string          `json:"description"`
}

// TransactionResponse is the API representation of a ledger entry
type TransactionResponse struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
}

// ToTransactionResponse maps a ledger entry to its API representation
func ToTransactionResponse(tx *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID.String(),
		Timestamp:   tx.Timestamp,
		Amount:      tx.Amount,
		Kind:        tx.Kind.String(),
		Description: tx.Description,
	}
}

// CustomerResponse is the API representation of a customer
type CustomerResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Phone       string                `json:"phone"`
	CurrentDebt decimal.Decimal       `json:"current_debt"`
	History     []TransactionResponse `json:"history"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ToCustomerResponse maps a customer aggregate to its API representation
func ToCustomerResponse(customer *ledger.Customer) CustomerResponse {
	history := make([]TransactionResponse, 0, len(customer.History))
	for i := range customer.History {
		history = append(history, ToTransactionResponse(&customer.History[i]))
	}
	return CustomerResponse{
		ID:          customer.ID.String(),
		Name:        customer.Name,
		Phone:       customer.Phone,
		CurrentDebt: customer.CurrentDebt,
		History:     history,
		CreatedAt:   customer.CreatedAt,
		UpdatedAt:   customer.UpdatedAt,
	}
}

// ToCustomerResponses maps a slice of customers
func ToCustomerResponses(customers []ledger.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses
}
