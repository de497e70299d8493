package advisor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/ledger"
	"github.com/tiendafacil/backend/internal/domain/sales"
)

// Client generates advice text from a prompt. Implementations wrap an
// external model API and must stay strictly read-only: the service hands
// them rendered text, never store references.
type Client interface {
	GenerateAdvice(ctx context.Context, systemInstruction, prompt string) (string, error)
}

const (
	systemInstruction = "Eres 'Don Fácil', un asistente virtual experto en administración de tiendas de barrio. Das consejos cortos y accionables."

	// fallbackMessage is shown whenever the model call fails. The advisor
	// must never surface an error into the UI flow.
	fallbackMessage = "Ocurrió un error al consultar con el asistente inteligente. Por favor intenta más tarde."

	// emptyMessage is shown when the model returns no text
	emptyMessage = "Lo siento, no pude generar un consejo en este momento."
)

const (
	// topDebtorCount is how many customers are summarized in the prompt context
	topDebtorCount = 3
	// recentSalesWindow is how many of the latest sales feed the prompt context
	recentSalesWindow = 10
)

// Service answers free-form business questions about the store. It reads
// snapshots of the three stores, summarizes them into a prompt, and asks
// the model. It never mutates anything and is never on the critical path
// of a checkout.
type Service struct {
	client       Client
	productRepo  catalog.ProductRepository
	customerRepo ledger.CustomerRepository
	saleRepo     sales.SaleRepository
	logger       *zap.Logger
}

// NewService creates a new advisor Service
func NewService(
	client Client,
	productRepo catalog.ProductRepository,
	customerRepo ledger.CustomerRepository,
	saleRepo sales.SaleRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		client:       client,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		logger:       logger,
	}
}

// Advise answers the query using current store snapshots. A failing or
// cancelled model call yields the fallback message, never an error.
func (s *Service) Advise(ctx context.Context, query string) string {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		s.logger.Warn("advisor could not read catalog", zap.Error(err))
		return fallbackMessage
	}
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		s.logger.Warn("advisor could not read ledger", zap.Error(err))
		return fallbackMessage
	}
	recentSales, err := s.saleRepo.FindRecent(ctx, recentSalesWindow)
	if err != nil {
		s.logger.Warn("advisor could not read sales journal", zap.Error(err))
		return fallbackMessage
	}

	prompt := buildPrompt(query, products, customers, recentSales)

	answer, err := s.client.GenerateAdvice(ctx, systemInstruction, prompt)
	if err != nil {
		s.logger.Warn("advisor call failed", zap.Error(err))
		return fallbackMessage
	}
	if strings.TrimSpace(answer) == "" {
		return emptyMessage
	}
	return answer
}

// buildPrompt renders the store snapshot summary plus the user question
func buildPrompt(query string, products []catalog.Product, customers []ledger.Customer, recentSales []sales.Sale) string {
	lowStock := make([]string, 0)
	for i := range products {
		if products[i].IsLowStock(catalog.DefaultLowStockThreshold) {
			lowStock = append(lowStock, products[i].Name)
		}
	}
	lowStockText := "Ninguno"
	if len(lowStock) > 0 {
		lowStockText = strings.Join(lowStock, ", ")
	}

	debtors := make([]ledger.Customer, len(customers))
	copy(debtors, customers)
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].CurrentDebt.GreaterThan(debtors[j].CurrentDebt)
	})
	if len(debtors) > topDebtorCount {
		debtors = debtors[:topDebtorCount]
	}
	topDebtors := make([]string, 0, len(debtors))
	for i := range debtors {
		topDebtors = append(topDebtors, fmt.Sprintf("%s ($%s)", debtors[i].Name, debtors[i].CurrentDebt.String()))
	}
	topDebtorsText := "Ninguno"
	if len(topDebtors) > 0 {
		topDebtorsText = strings.Join(topDebtors, ", ")
	}

	totalSales := "0"
	if len(recentSales) > 0 {
		total := recentSales[0].Total
		for _, sale := range recentSales[1:] {
			total = total.Add(sale.Total)
		}
		totalSales = total.String()
	}

	var b strings.Builder
	b.WriteString("Contexto de la Tienda de Barrio (Colombia):\n")
	fmt.Fprintf(&b, "- Productos con bajo inventario: %s\n", lowStockText)
	fmt.Fprintf(&b, "- Clientes con mayor deuda (Fiado): %s\n", topDebtorsText)
	fmt.Fprintf(&b, "- Ventas recientes (Total): $%s\n\n", totalSales)
	b.WriteString("Actúa como un consultor experto en micronegocios y tiendas de barrio en Colombia. ")
	b.WriteString("Usa un tono amable, motivador y práctico. ")
	b.WriteString("Responde a la pregunta del usuario basándote en los datos anteriores si es relevante.\n\n")
	fmt.Fprintf(&b, "Pregunta del usuario: %s", query)
	return b.String()
}
