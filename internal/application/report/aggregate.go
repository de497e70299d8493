package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/ledger"
	"github.com/tiendafacil/backend/internal/domain/sales"
)

// DefaultTrendLength is how many recent sales the dashboard trend shows
const DefaultTrendLength = 7

// TrendPoint is one sale on the dashboard trend chart
type TrendPoint struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// TotalSales sums the totals of all given sales.
// An empty journal yields zero.
func TotalSales(saleList []sales.Sale) decimal.Decimal {
	total := decimal.Zero
	for i := range saleList {
		total = total.Add(saleList[i].Total)
	}
	return total
}

// TotalDebt sums the running balances of all given customers.
// Overpaid (negative) balances are included as-is; no customers yields zero.
func TotalDebt(customers []ledger.Customer) decimal.Decimal {
	total := decimal.Zero
	for i := range customers {
		total = total.Add(customers[i].CurrentDebt)
	}
	return total
}

// LowStockCount counts products whose stock is below threshold.
// An empty catalog yields zero.
func LowStockCount(products []catalog.Product, threshold int64) int {
	count := 0
	for i := range products {
		if products[i].IsLowStock(threshold) {
			count++
		}
	}
	return count
}

// SalesTrend maps the last n sales to (date, amount) points in
// chronological order. Fewer sales than n yields fewer points.
func SalesTrend(saleList []sales.Sale, n int) []TrendPoint {
	if n <= 0 {
		n = DefaultTrendLength
	}
	start := 0
	if len(saleList) > n {
		start = len(saleList) - n
	}

	points := make([]TrendPoint, 0, len(saleList)-start)
	for _, sale := range saleList[start:] {
		points = append(points, TrendPoint{
			Date:   sale.Timestamp,
			Amount: sale.Total,
		})
	}
	return points
}
