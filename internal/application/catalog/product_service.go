package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/shared"
	"github.com/tiendafacil/backend/internal/domain/shared/valueobject"
)

// ProductService handles catalog management operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Price, req.Stock, req.Category)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Update merges the set fields of req into the product.
// Field-level validation matches creation; unknown ids fail with NOT_FOUND.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if req.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_UPDATE", "At least one field must be provided")
	}

	var updated *catalog.Product
	err := s.productRepo.Update(ctx, productID, func(product *catalog.Product) error {
		if req.Name != nil {
			if err := product.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Price != nil {
			if err := product.SetPrice(valueobject.NewMoneyCOP(*req.Price)); err != nil {
				return err
			}
		}
		if req.Stock != nil {
			if err := product.SetStock(*req.Stock); err != nil {
				return err
			}
		}
		if req.Category != nil {
			product.SetCategory(*req.Category)
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(updated)
	return &response, nil
}

// Delete removes a product from the catalog. Historical sales keep their
// denormalized name and price, so deletion is never blocked by past sales.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	return s.productRepo.Delete(ctx, productID)
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves all products
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// LowStock retrieves products whose stock is below threshold
func (s *ProductService) LowStock(ctx context.Context, threshold int64) ([]ProductResponse, error) {
	if threshold <= 0 {
		threshold = catalog.DefaultLowStockThreshold
	}
	products, err := s.productRepo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}
