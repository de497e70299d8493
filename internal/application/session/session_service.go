// Package session handles the lifecycle of a store session: restoring
// state when the owner opens the store and saving it when they close it.
package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/ledger"
	"github.com/tiendafacil/backend/internal/domain/sales"
	"github.com/tiendafacil/backend/internal/domain/shared"
)

// Snapshot is a point-in-time copy of the three stores
type Snapshot struct {
	Products  []catalog.Product
	Customers []ledger.Customer
	Sales     []sales.Sale
}

// Archive persists snapshots keyed by store identity
type Archive interface {
	Save(ctx context.Context, storeID string, snap Snapshot) error
	Load(ctx context.Context, storeID string) (*Snapshot, error)
}

// ProductStore is the slice of the product repository the session needs
type ProductStore interface {
	FindAll(ctx context.Context) ([]catalog.Product, error)
	Replace(ctx context.Context, products []catalog.Product) error
}

// CustomerStore is the slice of the customer repository the session needs
type CustomerStore interface {
	FindAll(ctx context.Context) ([]ledger.Customer, error)
	Replace(ctx context.Context, customers []ledger.Customer) error
}

// SaleStore is the slice of the sales journal the session needs
type SaleStore interface {
	FindAll(ctx context.Context) ([]sales.Sale, error)
	Replace(ctx context.Context, journal []sales.Sale) error
}

// ErrSnapshotDisabled is returned when saving or restoring without a
// configured archive. State is then session-scoped and lost on close.
var ErrSnapshotDisabled = shared.NewDomainError("SNAPSHOT_DISABLED", "Snapshot persistence is not configured")

// Service saves and restores whole-store snapshots. With no archive
// configured it reports itself disabled and refuses both operations.
type Service struct {
	archive   Archive
	storeID   string
	products  ProductStore
	customers CustomerStore
	sales     SaleStore
	logger    *zap.Logger
}

// NewService creates a session Service. A nil archive disables snapshots.
func NewService(
	archive Archive,
	storeID string,
	products ProductStore,
	customers CustomerStore,
	sales SaleStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		archive:   archive,
		storeID:   storeID,
		products:  products,
		customers: customers,
		sales:     sales,
		logger:    logger,
	}
}

// Enabled reports whether snapshot persistence is configured
func (s *Service) Enabled() bool {
	return s.archive != nil
}

// Save writes the current state of the three stores to the archive
func (s *Service) Save(ctx context.Context) error {
	if !s.Enabled() {
		return ErrSnapshotDisabled
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return err
	}
	customers, err := s.customers.FindAll(ctx)
	if err != nil {
		return err
	}
	journal, err := s.sales.FindAll(ctx)
	if err != nil {
		return err
	}

	snap := Snapshot{Products: products, Customers: customers, Sales: journal}
	if err := s.archive.Save(ctx, s.storeID, snap); err != nil {
		return err
	}

	s.logger.Info("session snapshot saved",
		zap.String("store_id", s.storeID),
		zap.Int("products", len(products)),
		zap.Int("customers", len(customers)),
		zap.Int("sales", len(journal)),
	)
	return nil
}

// Restore replaces the current state of the three stores with the last
// saved snapshot. A store that was never saved restores as empty.
func (s *Service) Restore(ctx context.Context) error {
	if !s.Enabled() {
		return ErrSnapshotDisabled
	}

	snap, err := s.archive.Load(ctx, s.storeID)
	if err != nil {
		return err
	}

	if err := s.products.Replace(ctx, snap.Products); err != nil {
		return err
	}
	if err := s.customers.Replace(ctx, snap.Customers); err != nil {
		return err
	}
	if err := s.sales.Replace(ctx, snap.Sales); err != nil {
		return err
	}

	s.logger.Info("session snapshot restored",
		zap.String("store_id", s.storeID),
		zap.Int("products", len(snap.Products)),
		zap.Int("customers", len(snap.Customers)),
		zap.Int("sales", len(snap.Sales)),
	)
	return nil
}
