package snapshot

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/ledger"
	"github.com/tiendafacil/backend/internal/domain/sales"
	"github.com/tiendafacil/backend/internal/domain/shared"
)

// ProductModel is the persistence model for a catalog product
type ProductModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID   string          `gorm:"type:varchar(100);not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock     int64           `gorm:"not null;default:0"`
	Category  string          `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() catalog.Product {
	return catalog.Product{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:     m.Name,
		Price:    m.Price,
		Stock:    m.Stock,
		Category: m.Category,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(storeID string, p *catalog.Product) ProductModel {
	return ProductModel{
		ID:        p.ID,
		StoreID:   storeID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CustomerModel is the persistence model for a ledger customer
type CustomerModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID     string          `gorm:"type:varchar(100);not null;index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Phone       string          `gorm:"type:varchar(50)"`
	CurrentDebt decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	History []TransactionModel `gorm:"foreignKey:CustomerID;references:ID"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() ledger.Customer {
	history := make([]ledger.Transaction, 0, len(m.History))
	for i := range m.History {
		history = append(history, m.History[i].ToDomain())
	}
	return ledger.Customer{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:        m.Name,
		Phone:       m.Phone,
		CurrentDebt: m.CurrentDebt,
		History:     history,
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer
func CustomerModelFromDomain(storeID string, c *ledger.Customer) CustomerModel {
	history := make([]TransactionModel, 0, len(c.History))
	for i := range c.History {
		tx := TransactionModelFromDomain(storeID, c.ID, &c.History[i])
		tx.Seq = i
		history = append(history, tx)
	}
	return CustomerModel{
		ID:          c.ID,
		StoreID:     storeID,
		Name:        c.Name,
		Phone:       c.Phone,
		CurrentDebt: c.CurrentDebt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		History:     history,
	}
}

// TransactionModel is the persistence model for a ledger entry.
// Seq preserves the chronological append order within a customer history.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID     string          `gorm:"type:varchar(100);not null;index"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Seq         int             `gorm:"not null;default:0"`
	Timestamp   time.Time       `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Kind        string          `gorm:"type:varchar(10);not null"`
	Description string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() ledger.Transaction {
	return ledger.Transaction{
		ID:          m.ID,
		Timestamp:   m.Timestamp,
		Amount:      m.Amount,
		Kind:        ledger.TransactionKind(m.Kind),
		Description: m.Description,
	}
}

// TransactionModelFromDomain creates a persistence model from a domain Transaction
func TransactionModelFromDomain(storeID string, customerID uuid.UUID, t *ledger.Transaction) TransactionModel {
	return TransactionModel{
		ID:          t.ID,
		StoreID:     storeID,
		CustomerID:  customerID,
		Timestamp:   t.Timestamp,
		Amount:      t.Amount,
		Kind:        t.Kind.String(),
		Description: t.Description,
	}
}

// SaleModel is the persistence model for a journaled sale
type SaleModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID       string          `gorm:"type:varchar(100);not null;index"`
	Timestamp     time.Time       `gorm:"not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(10);not null"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid"`

	Items []SaleItemModel `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() sales.Sale {
	items := make([]sales.SaleItem, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, m.Items[i].ToDomain())
	}
	return sales.Sale{
		ID:            m.ID,
		Timestamp:     m.Timestamp,
		Total:         m.Total,
		Items:         items,
		PaymentMethod: sales.PaymentMethod(m.PaymentMethod),
		CustomerID:    m.CustomerID,
	}
}

// SaleModelFromDomain creates a persistence model from a domain Sale
func SaleModelFromDomain(storeID string, s *sales.Sale) SaleModel {
	items := make([]SaleItemModel, 0, len(s.Items))
	for i, item := range s.Items {
		items = append(items, SaleItemModel{
			ID:          uuid.New(),
			StoreID:     storeID,
			SaleID:      s.ID,
			Seq:         i,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			PriceAtSale: item.PriceAtSale,
		})
	}
	return SaleModel{
		ID:            s.ID,
		StoreID:       storeID,
		Timestamp:     s.Timestamp,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod.String(),
		CustomerID:    s.CustomerID,
		Items:         items,
	}
}

// SaleItemModel is the persistence model for a sale line.
// Seq preserves the line order within a sale.
type SaleItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID     string          `gorm:"type:varchar(100);not null;index"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Seq         int             `gorm:"not null;default:0"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	PriceAtSale decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain SaleItem
func (m *SaleItemModel) ToDomain() sales.SaleItem {
	return sales.SaleItem{
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		PriceAtSale: m.PriceAtSale,
	}
}
