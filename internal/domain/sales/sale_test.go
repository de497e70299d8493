package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []SaleItem {
	t.Helper()
	a, err := NewSaleItem(uuid.New(), "Arroz 500g", 2, decimal.NewFromInt(2500))
	require.NoError(t, err)
	b, err := NewSaleItem(uuid.New(), "Leche 1L", 1, decimal.NewFromInt(4200))
	require.NoError(t, err)
	return []SaleItem{a, b}
}

func TestNewSaleItem(t *testing.T) {
	t.Run("computes line amount", func(t *testing.T) {
		item, err := NewSaleItem(uuid.New(), "Pan", 3, decimal.NewFromInt(1000))
		require.NoError(t, err)
		assert.True(t, item.Amount().Equal(decimal.NewFromInt(3000)))
	})

	t.Run("fails with nil product", func(t *testing.T) {
		_, err := NewSaleItem(uuid.Nil, "Pan", 1, decimal.NewFromInt(1000))
		require.Error(t, err)
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		_, err := NewSaleItem(uuid.New(), "Pan", 0, decimal.NewFromInt(1000))
		require.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewSaleItem(uuid.New(), "Pan", 1, decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestNewSale(t *testing.T) {
	t.Run("creates cash sale when total matches items", func(t *testing.T) {
		items := testItems(t)
		sale, err := NewSale(items, decimal.NewFromInt(9200), PaymentMethodCash, nil)
		require.NoError(t, err)
		require.NotNil(t, sale)

		assert.NotEmpty(t, sale.ID)
		assert.False(t, sale.Timestamp.IsZero())
		assert.True(t, sale.Total.Equal(decimal.NewFromInt(9200)))
		assert.Len(t, sale.Items, 2)
		assert.Nil(t, sale.CustomerID)
		assert.False(t, sale.IsCredit())
	})

	t.Run("creates credit sale with customer", func(t *testing.T) {
		customerID := uuid.New()
		sale, err := NewSale(testItems(t), decimal.NewFromInt(9200), PaymentMethodCredit, &customerID)
		require.NoError(t, err)
		require.NotNil(t, sale.CustomerID)
		assert.Equal(t, customerID, *sale.CustomerID)
		assert.True(t, sale.IsCredit())
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := NewSale(nil, decimal.Zero, PaymentMethodCash, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one item")
	})

	t.Run("rejects total mismatch", func(t *testing.T) {
		_, err := NewSale(testItems(t), decimal.NewFromInt(9000), PaymentMethodCash, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")
	})

	t.Run("rejects credit sale without customer", func(t *testing.T) {
		_, err := NewSale(testItems(t), decimal.NewFromInt(9200), PaymentMethodCredit, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "require a customer")
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := NewSale(testItems(t), decimal.NewFromInt(9200), PaymentMethod("check"), nil)
		require.Error(t, err)
	})

	t.Run("copies items so the journal entry cannot be mutated through the cart", func(t *testing.T) {
		items := testItems(t)
		sale, err := NewSale(items, decimal.NewFromInt(9200), PaymentMethodCash, nil)
		require.NoError(t, err)

		items[0].Quantity = 99
		assert.Equal(t, int64(2), sale.Items[0].Quantity)
	})
}
