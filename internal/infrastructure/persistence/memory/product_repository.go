// Package memory provides the in-memory repositories backing a store
// session. All state lives in process; durability is delegated to the
// optional snapshot store.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/shared"
)

// ProductRepository is an in-memory implementation of
// catalog.ProductRepository. A single RWMutex guards the map and the
// insertion order, making Update an atomic read-modify-write.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*catalog.Product
	order    []uuid.UUID
}

// NewProductRepository creates an empty in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[uuid.UUID]*catalog.Product),
	}
}

// Save inserts or replaces a product
func (r *ProductRepository) Save(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

// FindByID finds a product by its ID
func (r *ProductRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

// FindAll returns all products in creation order
func (r *ProductRepository) FindAll(_ context.Context) ([]catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]catalog.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, *r.products[id])
	}
	return products, nil
}

// FindLowStock returns products whose stock is below threshold, in creation order
func (r *ProductRepository) FindLowStock(_ context.Context, threshold int64) ([]catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]catalog.Product, 0)
	for _, id := range r.order {
		if r.products[id].IsLowStock(threshold) {
			products = append(products, *r.products[id])
		}
	}
	return products, nil
}

// Update applies fn to the stored product under the write lock
func (r *ProductRepository) Update(_ context.Context, id uuid.UUID, fn func(product *catalog.Product) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return shared.ErrNotFound
	}

	// Work on a copy so a failing fn leaves the stored product untouched.
	clone := *product
	if err := fn(&clone); err != nil {
		return err
	}
	r.products[id] = &clone
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Replace swaps the whole repository content, used when restoring a
// snapshot at session start
func (r *ProductRepository) Replace(_ context.Context, products []catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make(map[uuid.UUID]*catalog.Product, len(products))
	r.order = make([]uuid.UUID, 0, len(products))
	for i := range products {
		clone := products[i]
		r.products[clone.ID] = &clone
		r.order = append(r.order, clone.ID)
	}
	return nil
}

var _ catalog.ProductRepository = (*ProductRepository)(nil)
