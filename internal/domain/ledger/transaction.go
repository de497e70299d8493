package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes credit granted from money received
type TransactionKind string

const (
	// TransactionKindDebt records credit granted to the customer ("fiar")
	TransactionKindDebt TransactionKind = "debt"
	// TransactionKindPayment records money received from the customer ("pagar")
	TransactionKindPayment TransactionKind = "payment"
)

// IsValid checks if the kind is a known TransactionKind
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindDebt || k == TransactionKindPayment
}

// String returns the string representation of TransactionKind
func (k TransactionKind) String() string {
	return string(k)
}

// Transaction is a single immutable entry in a customer's ledger history.
// Entries are only ever appended, never edited or removed; the customer's
// running debt is always the signed sum of its history.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
}

// SignedAmount returns the amount with the sign it contributes to the
// running debt: positive for debt, negative for payment.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == TransactionKindPayment {
		return t.Amount.Neg()
	}
	return t.Amount
}
