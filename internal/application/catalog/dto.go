package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/catalog"
)

// CreateProductRequest carries the fields for a new product
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock"`
	Category string          `json:"category"`
}

// UpdateProductRequest is a partial update. Nil pointers leave the field
// untouched; set fields go through the same validation as creation.
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Stock    *int64           `json:"stock,omitempty"`
	Category *string          `json:"category,omitempty"`
}

// IsEmpty reports whether no field is set
func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Price == nil && r.Stock == nil && r.Category == nil
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToProductResponse maps a product aggregate to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
		Category:  product.Category,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

// ToProductResponses maps a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}
