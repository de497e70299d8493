// Package snapshot implements the optional persistence collaborator: a
// whole-store snapshot saved to and loaded from SQLite. When it is not
// configured, store state is session-scoped and lost on logout.
package snapshot

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tiendafacil/backend/internal/application/session"
	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/ledger"
	"github.com/tiendafacil/backend/internal/domain/sales"
	"github.com/tiendafacil/backend/internal/domain/shared"
)

// Store implements session.Archive on top of SQLite, keyed by store identity
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite snapshot database at path and
// migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	if err := db.AutoMigrate(
		&ProductModel{},
		&CustomerModel{},
		&TransactionModel{},
		&SaleModel{},
		&SaleItemModel{},
	); err != nil {
		return nil, fmt.Errorf("migrate snapshot schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing gorm handle; used by tests
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save replaces the persisted snapshot for storeID with snap.
// The whole snapshot is written inside one transaction so a load never
// observes a partially flushed checkout.
func (s *Store) Save(ctx context.Context, storeID string, snap session.Snapshot) error {
	if storeID == "" {
		return shared.NewDomainError("INVALID_STORE", "Store identity cannot be empty")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&SaleItemModel{}, &SaleModel{}, &TransactionModel{}, &CustomerModel{}, &ProductModel{},
		} {
			if err := tx.Where("store_id = ?", storeID).Delete(model).Error; err != nil {
				return err
			}
		}

		for i := range snap.Products {
			model := ProductModelFromDomain(storeID, &snap.Products[i])
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}
		for i := range snap.Customers {
			model := CustomerModelFromDomain(storeID, &snap.Customers[i])
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}
		for i := range snap.Sales {
			model := SaleModelFromDomain(storeID, &snap.Sales[i])
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads the persisted snapshot for storeID. A store that was never
// saved loads as an empty snapshot.
func (s *Store) Load(ctx context.Context, storeID string) (*session.Snapshot, error) {
	if storeID == "" {
		return nil, shared.NewDomainError("INVALID_STORE", "Store identity cannot be empty")
	}

	var productModels []ProductModel
	if err := s.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at").
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	var customerModels []CustomerModel
	if err := s.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Where("store_id = ?", storeID).
		Order("created_at").
		Find(&customerModels).Error; err != nil {
		return nil, err
	}

	var saleModels []SaleModel
	if err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Where("store_id = ?", storeID).
		Order("timestamp").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}

	snap := &session.Snapshot{
		Products:  make([]catalog.Product, 0, len(productModels)),
		Customers: make([]ledger.Customer, 0, len(customerModels)),
		Sales:     make([]sales.Sale, 0, len(saleModels)),
	}
	for i := range productModels {
		snap.Products = append(snap.Products, productModels[i].ToDomain())
	}
	for i := range customerModels {
		snap.Customers = append(snap.Customers, customerModels[i].ToDomain())
	}
	for i := range saleModels {
		snap.Sales = append(snap.Sales, saleModels[i].ToDomain())
	}
	return snap, nil
}

var _ session.Archive = (*Store)(nil)
