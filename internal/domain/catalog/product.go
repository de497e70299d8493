package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/shared"
	"github.com/tiendafacil/backend/internal/domain/shared/valueobject"
)

// DefaultLowStockThreshold is the stock level below which a product is
// flagged for restocking on the dashboard.
const DefaultLowStockThreshold int64 = 5

// Product represents a sellable item in the store catalog.
// It is the aggregate root for catalog operations and the only owner
// of the stock counter.
type Product struct {
	shared.BaseEntity
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock"`
	Category string          `json:"category"`
}

// NewProduct creates a new product with validated fields
func NewProduct(name string, price decimal.Decimal, stock int64, category string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price,
		Stock:      stock,
		Category:   category,
	}, nil
}

// Rename updates the product name
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrice updates the selling price.
// A later price change never affects already journaled sales; those carry
// the price captured at checkout.
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// SetStock replaces the stock counter, used by direct inventory edits
func (p *Product) SetStock(stock int64) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

// SetCategory updates the product category
func (p *Product) SetCategory(category string) {
	p.Category = category
	p.UpdatedAt = time.Now()
}

// DecrementStock reduces the stock counter by quantity, clamping at zero.
// The clamp is the single documented silent floor in the system: checkout
// validates sufficiency beforehand, so a clamp only fires when an inventory
// edit races the commit.
func (p *Product) DecrementStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	p.Stock = max(0, p.Stock-quantity)
	p.UpdatedAt = time.Now()
	return nil
}

// HasStockFor reports whether the current stock covers the requested quantity
func (p *Product) HasStockFor(quantity int64) bool {
	return quantity > 0 && p.Stock >= quantity
}

// IsLowStock reports whether the stock is below the given threshold
func (p *Product) IsLowStock(threshold int64) bool {
	return p.Stock < threshold
}

// PriceMoney returns the selling price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyCOP(p.Price)
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
