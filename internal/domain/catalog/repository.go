package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for the Product aggregate
type ProductRepository interface {
	// Save inserts or replaces a product
	Save(ctx context.Context, product *Product) error
	// FindByID finds a product by its ID, returning shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindAll returns all products ordered by creation time
	FindAll(ctx context.Context) ([]Product, error)
	// FindLowStock returns products whose stock is below threshold
	FindLowStock(ctx context.Context, threshold int64) ([]Product, error)
	// Update applies fn to the live product as an atomic read-modify-write,
	// so checkout decrements and concurrent inventory edits never lose an
	// update. Returns shared.ErrNotFound when the product is absent.
	Update(ctx context.Context, id uuid.UUID, fn func(product *Product) error) error
	// Delete removes a product, returning shared.ErrNotFound when absent.
	// Historical sale lines are denormalized and unaffected.
	Delete(ctx context.Context, id uuid.UUID) error
}
