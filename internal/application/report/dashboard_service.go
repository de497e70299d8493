package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/ledger"
	"github.com/tiendafacil/backend/internal/domain/sales"
)

// DashboardStats is the summary block shown at the top of the dashboard
type DashboardStats struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalDebt     decimal.Decimal `json:"total_debt"`
	LowStockCount int             `json:"low_stock_count"`
	Trend         []TrendPoint    `json:"trend"`
}

// DashboardService computes dashboard statistics on demand from current
// snapshots of the three stores. It holds no state of its own.
type DashboardService struct {
	productRepo       catalog.ProductRepository
	customerRepo      ledger.CustomerRepository
	saleRepo          sales.SaleRepository
	lowStockThreshold int64
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	productRepo catalog.ProductRepository,
	customerRepo ledger.CustomerRepository,
	saleRepo sales.SaleRepository,
	lowStockThreshold int64,
) *DashboardService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = catalog.DefaultLowStockThreshold
	}
	return &DashboardService{
		productRepo:       productRepo,
		customerRepo:      customerRepo,
		saleRepo:          saleRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// Stats recomputes the dashboard summary from the current snapshots
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	saleList, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalSales:    TotalSales(saleList),
		TotalDebt:     TotalDebt(customers),
		LowStockCount: LowStockCount(products, s.lowStockThreshold),
		Trend:         SalesTrend(saleList, DefaultTrendLength),
	}, nil
}
