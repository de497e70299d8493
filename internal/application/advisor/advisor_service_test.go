package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/ledger"
	"github.com/tiendafacil/backend/internal/infrastructure/persistence/memory"
)

type fakeClient struct {
	answer     string
	err        error
	lastSystem string
	lastPrompt string
}

func (c *fakeClient) GenerateAdvice(_ context.Context, systemInstruction, prompt string) (string, error) {
	c.lastSystem = systemInstruction
	c.lastPrompt = prompt
	return c.answer, c.err
}

type advisorFixture struct {
	client    *fakeClient
	products  *memory.ProductRepository
	customers *memory.CustomerRepository
	service   *Service
}

func newAdvisorFixture(client *fakeClient) *advisorFixture {
	products := memory.NewProductRepository()
	customers := memory.NewCustomerRepository()
	journal := memory.NewSaleRepository()
	return &advisorFixture{
		client:    client,
		products:  products,
		customers: customers,
		service:   NewService(client, products, customers, journal, zap.NewNop()),
	}
}

func TestService_Advise(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the model answer", func(t *testing.T) {
		f := newAdvisorFixture(&fakeClient{answer: "Surte más arroz."})

		answer := f.service.Advise(ctx, "¿Qué debería surtir?")
		assert.Equal(t, "Surte más arroz.", answer)
		assert.Contains(t, f.client.lastSystem, "Don Fácil")
		assert.Contains(t, f.client.lastPrompt, "¿Qué debería surtir?")
	})

	t.Run("model failure yields the fallback message", func(t *testing.T) {
		f := newAdvisorFixture(&fakeClient{err: errors.New("quota exceeded")})

		answer := f.service.Advise(ctx, "¿Cómo van las ventas?")
		assert.Equal(t, fallbackMessage, answer)
	})

	t.Run("blank model answer yields the empty message", func(t *testing.T) {
		f := newAdvisorFixture(&fakeClient{answer: "  \n"})

		answer := f.service.Advise(ctx, "¿Cómo van las ventas?")
		assert.Equal(t, emptyMessage, answer)
	})

	t.Run("prompt summarizes low stock and top debtors", func(t *testing.T) {
		f := newAdvisorFixture(&fakeClient{answer: "ok"})

		low, err := catalog.NewProduct("Arroz 500g", decimal.NewFromInt(1000), 1, "Granos")
		require.NoError(t, err)
		full, err := catalog.NewProduct("Gaseosa", decimal.NewFromInt(2500), 30, "Bebidas")
		require.NoError(t, err)
		require.NoError(t, f.products.Save(ctx, low))
		require.NoError(t, f.products.Save(ctx, full))

		debtor, err := ledger.NewCustomer("Doña Marta", "")
		require.NoError(t, err)
		_, err = debtor.PostTransaction(decimal.NewFromInt(12000), ledger.TransactionKindDebt, "")
		require.NoError(t, err)
		require.NoError(t, f.customers.Save(ctx, debtor))

		f.service.Advise(ctx, "¿A quién debo cobrar?")

		assert.Contains(t, f.client.lastPrompt, "Arroz 500g")
		assert.NotContains(t, f.client.lastPrompt, "Gaseosa")
		assert.Contains(t, f.client.lastPrompt, "Doña Marta ($12000)")
	})

	t.Run("empty store renders a prompt without placeholders breaking", func(t *testing.T) {
		f := newAdvisorFixture(&fakeClient{answer: "ok"})

		f.service.Advise(ctx, "Hola")

		assert.Contains(t, f.client.lastPrompt, "Ninguno")
		assert.Contains(t, f.client.lastPrompt, "$0")
	})
}
