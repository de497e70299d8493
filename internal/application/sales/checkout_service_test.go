package sales

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/ledger"
	"github.com/tiendafacil/backend/internal/domain/sales"
	"github.com/tiendafacil/backend/internal/domain/shared"
	"github.com/tiendafacil/backend/internal/infrastructure/persistence/memory"
)

type checkoutFixture struct {
	products  *memory.ProductRepository
	customers *memory.CustomerRepository
	journal   *memory.SaleRepository
	service   *CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	products := memory.NewProductRepository()
	customers := memory.NewCustomerRepository()
	journal := memory.NewSaleRepository()
	return &checkoutFixture{
		products:  products,
		customers: customers,
		journal:   journal,
		service:   NewCheckoutService(products, customers, journal, zap.NewNop()),
	}
}

func (f *checkoutFixture) seedProduct(t *testing.T, name string, price int64, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, decimal.NewFromInt(price), stock, "Abarrotes")
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), product))
	return product
}

func (f *checkoutFixture) seedCustomer(t *testing.T, name string) *ledger.Customer {
	t.Helper()
	customer, err := ledger.NewCustomer(name, "3001234567")
	require.NoError(t, err)
	require.NoError(t, f.customers.Save(context.Background(), customer))
	return customer
}

func (f *checkoutFixture) stockOf(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	product, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return product.Stock
}

func (f *checkoutFixture) journalLen(t *testing.T) int {
	t.Helper()
	saleList, err := f.journal.FindAll(context.Background())
	require.NoError(t, err)
	return len(saleList)
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("cash checkout decrements stock and journals the sale", func(t *testing.T) {
		f := newCheckoutFixture()
		product := f.seedProduct(t, "Arroz 500g", 1000, 10)

		sale, err := f.service.Checkout(ctx, CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: product.ID, Quantity: 3}},
			PaymentMethod: sales.PaymentMethodCash,
		})
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(3000).Equal(sale.Total))
		assert.Equal(t, "cash", sale.PaymentMethod)
		assert.Nil(t, sale.CustomerID)
		require.Len(t, sale.Items, 1)
		assert.Equal(t, "Arroz 500g", sale.Items[0].ProductName)
		assert.True(t, decimal.NewFromInt(1000).Equal(sale.Items[0].PriceAtSale))

		assert.Equal(t, int64(7), f.stockOf(t, product.ID))
		assert.Equal(t, 1, f.journalLen(t))
	})

	t.Run("credit checkout posts the debt to the customer ledger", func(t *testing.T) {
		f := newCheckoutFixture()
		product := f.seedProduct(t, "Panela", 1500, 5)
		customer := f.seedCustomer(t, "Doña Marta")

		sale, err := f.service.Checkout(ctx, CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: product.ID, Quantity: 2}},
			PaymentMethod: sales.PaymentMethodCredit,
			CustomerID:    &customer.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, sale.CustomerID)
		assert.Equal(t, customer.ID.String(), *sale.CustomerID)

		updated, err := f.customers.FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(3000).Equal(updated.CurrentDebt))
		require.Len(t, updated.History, 1)
		assert.Equal(t, ledger.TransactionKindDebt, updated.History[0].Kind)
		assert.Equal(t, creditSaleDescription, updated.History[0].Description)
		assert.True(t, decimal.NewFromInt(3000).Equal(updated.History[0].Amount))
	})

	t.Run("credit without customer is rejected with no writes", func(t *testing.T) {
		f := newCheckoutFixture()
		product := f.seedProduct(t, "Aceite", 8000, 4)

		_, err := f.service.Checkout(ctx, CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
			PaymentMethod: sales.PaymentMethodCredit,
		})
		assert.Equal(t, "CUSTOMER_REQUIRED", domainCode(t, err))
		assert.Equal(t, int64(4), f.stockOf(t, product.ID))
		assert.Equal(t, 0, f.journalLen(t))
	})

	t.Run("credit with unknown customer is rejected", func(t *testing.T) {
		f := newCheckoutFixture()
		product := f.seedProduct(t, "Aceite", 8000, 4)
		unknown := uuid.New()

		_, err := f.service.Checkout(ctx, CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
			PaymentMethod: sales.PaymentMethodCredit,
			CustomerID:    &unknown,
		})
		require.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, int64(4), f.stockOf(t, product.ID))
		assert.Equal(t, 0, f.journalLen(t))
	})

	t.Run("insufficient stock rejects the whole cart", func(t *testing.T) {
		f := newCheckoutFixture()
		scarce := f.seedProduct(t, "Leche", 3500, 2)
		plenty := f.seedProduct(t, "Pan", 500, 50)

		_, err := f.service.Checkout(ctx, CheckoutRequest{
			Items: []CheckoutItem{
				{ProductID: plenty.ID, Quantity: 5},
				{ProductID: scarce.ID, Quantity: 3},
			},
			PaymentMethod: sales.PaymentMethodCash,
		})
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(2), f.stockOf(t, scarce.ID))
		assert.Equal(t, int64(50), f.stockOf(t, plenty.ID))
		assert.Equal(t, 0, f.journalLen(t))
	})

	t.Run("duplicate cart lines are checked against the combined quantity", func(t *testing.T) {
		f := newCheckoutFixture()
		product := f.seedProduct(t, "Gaseosa", 2500, 5)

		_, err := f.service.Checkout(ctx, CheckoutRequest{
			Items: []CheckoutItem{
				{ProductID: product.ID, Quantity: 3},
				{ProductID: product.ID, Quantity: 3},
			},
			PaymentMethod: sales.PaymentMethodCash,
		})
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(5), f.stockOf(t, product.ID))
	})

	t.Run("duplicate cart lines within stock produce separate sale lines", func(t *testing.T) {
		f := newCheckoutFixture()
		product := f.seedProduct(t, "Gaseosa", 2500, 10)

		sale, err := f.service.Checkout(ctx, CheckoutRequest{
			Items: []CheckoutItem{
				{ProductID: product.ID, Quantity: 3},
				{ProductID: product.ID, Quantity: 3},
			},
			PaymentMethod: sales.PaymentMethodCash,
		})
		require.NoError(t, err)
		assert.Len(t, sale.Items, 2)
		assert.True(t, decimal.NewFromInt(15000).Equal(sale.Total))
		assert.Equal(t, int64(4), f.stockOf(t, product.ID))
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		f := newCheckoutFixture()

		_, err := f.service.Checkout(ctx, CheckoutRequest{
			PaymentMethod: sales.PaymentMethodCash,
		})
		assert.Equal(t, "EMPTY_CART", domainCode(t, err))
	})

	t.Run("unknown payment method is rejected", func(t *testing.T) {
		f := newCheckoutFixture()
		product := f.seedProduct(t, "Velas", 700, 10)

		_, err := f.service.Checkout(ctx, CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
			PaymentMethod: "transfer",
		})
		assert.Equal(t, "INVALID_PAYMENT_METHOD", domainCode(t, err))
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		f := newCheckoutFixture()
		product := f.seedProduct(t, "Velas", 700, 10)

		_, err := f.service.Checkout(ctx, CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: product.ID, Quantity: 0}},
			PaymentMethod: sales.PaymentMethodCash,
		})
		assert.Equal(t, "INVALID_QUANTITY", domainCode(t, err))
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		f := newCheckoutFixture()

		_, err := f.service.Checkout(ctx, CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: uuid.New(), Quantity: 1}},
			PaymentMethod: sales.PaymentMethodCash,
		})
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("zero total credit sale is rejected", func(t *testing.T) {
		f := newCheckoutFixture()
		free := f.seedProduct(t, "Muestra gratis", 0, 10)
		customer := f.seedCustomer(t, "Don Pedro")

		_, err := f.service.Checkout(ctx, CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: free.ID, Quantity: 1}},
			PaymentMethod: sales.PaymentMethodCredit,
			CustomerID:    &customer.ID,
		})
		assert.Equal(t, "INVALID_TOTAL", domainCode(t, err))
		assert.Equal(t, int64(10), f.stockOf(t, free.ID))
	})

	t.Run("zero total cash sale is journaled", func(t *testing.T) {
		f := newCheckoutFixture()
		free := f.seedProduct(t, "Muestra gratis", 0, 10)

		sale, err := f.service.Checkout(ctx, CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: free.ID, Quantity: 1}},
			PaymentMethod: sales.PaymentMethodCash,
		})
		require.NoError(t, err)
		assert.True(t, sale.Total.IsZero())
		assert.Equal(t, int64(9), f.stockOf(t, free.ID))
	})

	t.Run("price captured at checkout survives later catalog edits", func(t *testing.T) {
		f := newCheckoutFixture()
		product := f.seedProduct(t, "Café 250g", 9000, 10)

		sale, err := f.service.Checkout(ctx, CheckoutRequest{
			Items:         []CheckoutItem{{ProductID: product.ID, Quantity: 1}},
			PaymentMethod: sales.PaymentMethodCash,
		})
		require.NoError(t, err)

		err = f.products.Update(ctx, product.ID, func(p *catalog.Product) error {
			return p.SetStock(0)
		})
		require.NoError(t, err)
		require.NoError(t, f.products.Delete(ctx, product.ID))

		journaled, err := f.journal.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, journaled, 1)
		assert.Equal(t, sale.ID, journaled[0].ID.String())
		assert.Equal(t, "Café 250g", journaled[0].Items[0].ProductName)
		assert.True(t, decimal.NewFromInt(9000).Equal(journaled[0].Items[0].PriceAtSale))
	})
}

// conflictingProductRepo runs an injected catalog edit right before the
// first reservation Update on the target product, simulating an inventory
// edit that slips in between validation and commit.
type conflictingProductRepo struct {
	*memory.ProductRepository
	target  uuid.UUID
	edit    func()
	applied bool
}

func (r *conflictingProductRepo) Update(ctx context.Context, id uuid.UUID, fn func(product *catalog.Product) error) error {
	if id == r.target && !r.applied {
		r.applied = true
		r.edit()
	}
	return r.ProductRepository.Update(ctx, id, fn)
}

func TestCheckoutService_CommitTimeRaces(t *testing.T) {
	ctx := context.Background()

	type raceFixture struct {
		products *memory.ProductRepository
		journal  *memory.SaleRepository
		first    *catalog.Product
		second   *catalog.Product
	}

	setup := func(t *testing.T, edit func(f *raceFixture)) (*raceFixture, *CheckoutService) {
		t.Helper()
		f := &raceFixture{
			products: memory.NewProductRepository(),
			journal:  memory.NewSaleRepository(),
		}

		var err error
		f.first, err = catalog.NewProduct("Arroz 500g", decimal.NewFromInt(1000), 10, "Granos")
		require.NoError(t, err)
		require.NoError(t, f.products.Save(ctx, f.first))
		f.second, err = catalog.NewProduct("Panela", decimal.NewFromInt(1500), 5, "Endulzantes")
		require.NoError(t, err)
		require.NoError(t, f.products.Save(ctx, f.second))

		wrapped := &conflictingProductRepo{
			ProductRepository: f.products,
			target:            f.second.ID,
			edit:              func() { edit(f) },
		}
		service := NewCheckoutService(wrapped, memory.NewCustomerRepository(), f.journal, zap.NewNop())
		return f, service
	}

	checkout := func(f *raceFixture, service *CheckoutService) error {
		_, err := service.Checkout(ctx, CheckoutRequest{
			Items: []CheckoutItem{
				{ProductID: f.first.ID, Quantity: 3},
				{ProductID: f.second.ID, Quantity: 3},
			},
			PaymentMethod: sales.PaymentMethodCash,
		})
		return err
	}

	t.Run("racing stock edit rejects the cart and compensates reserved stock", func(t *testing.T) {
		f, service := setup(t, func(f *raceFixture) {
			err := f.products.Update(ctx, f.second.ID, func(p *catalog.Product) error {
				return p.SetStock(1)
			})
			require.NoError(t, err)
		})

		err := checkout(f, service)
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		// The first product's already-applied decrement is rolled back and
		// the racing edit wins.
		first, err := f.products.FindByID(ctx, f.first.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), first.Stock)
		second, err := f.products.FindByID(ctx, f.second.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), second.Stock)

		journal, err := f.journal.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, journal)
	})

	t.Run("racing product deletion surfaces as a concurrency conflict", func(t *testing.T) {
		f, service := setup(t, func(f *raceFixture) {
			require.NoError(t, f.products.Delete(ctx, f.second.ID))
		})

		err := checkout(f, service)
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		first, err := f.products.FindByID(ctx, f.first.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), first.Stock)
		_, err = f.products.FindByID(ctx, f.second.ID)
		require.ErrorIs(t, err, shared.ErrNotFound)

		journal, err := f.journal.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, journal)
	})
}

func TestCheckoutService_SerializesConcurrentCheckouts(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture()
	product := f.seedProduct(t, "Huevos x30", 18000, 10)

	// Each cart alone fits the stock, both together do not. Exactly one
	// must succeed regardless of interleaving.
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.service.Checkout(ctx, CheckoutRequest{
				Items:         []CheckoutItem{{ProductID: product.ID, Quantity: 6}},
				PaymentMethod: sales.PaymentMethodCash,
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, shared.ErrInsufficientStock)
			rejected++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, int64(4), f.stockOf(t, product.ID))
	assert.Equal(t, 1, f.journalLen(t))
}

func TestCheckoutState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    CheckoutState
		to      CheckoutState
		allowed bool
	}{
		{"idle to validating", CheckoutStateIdle, CheckoutStateValidating, true},
		{"idle to committing", CheckoutStateIdle, CheckoutStateCommitting, false},
		{"validating to committing", CheckoutStateValidating, CheckoutStateCommitting, true},
		{"validating to rejected", CheckoutStateValidating, CheckoutStateRejected, true},
		{"committing to done", CheckoutStateCommitting, CheckoutStateDone, true},
		{"committing to rejected", CheckoutStateCommitting, CheckoutStateRejected, true},
		{"committing to validating", CheckoutStateCommitting, CheckoutStateValidating, false},
		{"done is terminal", CheckoutStateDone, CheckoutStateValidating, false},
		{"rejected is terminal", CheckoutStateRejected, CheckoutStateValidating, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
