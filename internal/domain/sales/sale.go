package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/shared"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	// PaymentMethodCash is an immediate cash sale
	PaymentMethodCash PaymentMethod = "cash"
	// PaymentMethodCredit is a deferred "fiado" sale backed by a customer ledger
	PaymentMethodCredit PaymentMethod = "credit"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCredit
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// SaleItem is a line in a sale. Product name and price are denormalized
// snapshots taken at checkout: later catalog edits or deletions never
// change a journaled sale.
type SaleItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}

// NewSaleItem creates a validated sale line
func NewSaleItem(productID uuid.UUID, productName string, quantity int64, priceAtSale decimal.Decimal) (SaleItem, error) {
	if productID == uuid.Nil {
		return SaleItem{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return SaleItem{}, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return SaleItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if priceAtSale.IsNegative() {
		return SaleItem{}, shared.NewDomainError("INVALID_PRICE", "Price at sale cannot be negative")
	}

	return SaleItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		PriceAtSale: priceAtSale,
	}, nil
}

// Amount returns PriceAtSale * Quantity for this line
func (i SaleItem) Amount() decimal.Decimal {
	return i.PriceAtSale.Mul(decimal.NewFromInt(i.Quantity))
}

// Sale is a completed, journaled sale. Once created it is never mutated
// or removed.
type Sale struct {
	ID            uuid.UUID       `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Total         decimal.Decimal `json:"total"`
	Items         []SaleItem      `json:"items"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
}

// NewSale creates a sale from its lines. The total is recomputed from the
// items rather than trusted from the caller; a mismatch is rejected.
// Credit sales require a customer reference.
func NewSale(items []SaleItem, total decimal.Decimal, paymentMethod PaymentMethod, customerID *uuid.UUID) (*Sale, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "Sale must contain at least one item")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be cash or credit")
	}
	if paymentMethod == PaymentMethodCredit && (customerID == nil || *customerID == uuid.Nil) {
		return nil, shared.NewDomainError("CUSTOMER_REQUIRED", "Credit sales require a customer")
	}

	computed := decimal.Zero
	for _, item := range items {
		computed = computed.Add(item.Amount())
	}
	if !computed.Equal(total) {
		return nil, shared.NewDomainError("TOTAL_MISMATCH", "Sale total does not match the sum of its items")
	}

	lines := make([]SaleItem, len(items))
	copy(lines, items)

	return &Sale{
		ID:            uuid.New(),
		Timestamp:     time.Now(),
		Total:         computed,
		Items:         lines,
		PaymentMethod: paymentMethod,
		CustomerID:    customerID,
	}, nil
}

// IsCredit reports whether this sale was paid on customer credit
func (s *Sale) IsCredit() bool {
	return s.PaymentMethod == PaymentMethodCredit
}
