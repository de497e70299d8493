package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/sales"
)

// CheckoutItem is one cart line handed to the checkout coordinator
type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// CheckoutRequest is the input of a checkout: the cart, how it is paid
// and, for credit sales, which customer carries the debt.
type CheckoutRequest struct {
	Items         []CheckoutItem      `json:"items"`
	PaymentMethod sales.PaymentMethod `json:"payment_method"`
	CustomerID    *uuid.UUID          `json:"customer_id,omitempty"`
}

// SaleItemResponse is the API representation of a sale line
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}

// SaleResponse is the API representation of a journaled sale
type SaleResponse struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Total         decimal.Decimal    `json:"total"`
	Items         []SaleItemResponse `json:"items"`
	PaymentMethod string             `json:"payment_method"`
	CustomerID    *string            `json:"customer_id,omitempty"`
}

// ToSaleResponse maps a sale to its API representation
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			PriceAtSale: item.PriceAtSale,
		})
	}

	var customerID *string
	if sale.CustomerID != nil {
		id := sale.CustomerID.String()
		customerID = &id
	}

	return SaleResponse{
		ID:            sale.ID.String(),
		Timestamp:     sale.Timestamp,
		Total:         sale.Total,
		Items:         items,
		PaymentMethod: sale.PaymentMethod.String(),
		CustomerID:    customerID,
	}
}

// ToSaleResponses maps a slice of sales
func ToSaleResponses(saleList []sales.Sale) []SaleResponse {
	responses := make([]SaleResponse, 0, len(saleList))
	for i := range saleList {
		responses = append(responses, ToSaleResponse(&saleList[i]))
	}
	return responses
}
