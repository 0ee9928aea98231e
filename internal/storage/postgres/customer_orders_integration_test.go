package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wedsontavares/escribo-orders/internal/domain"
)

type seededOrder struct {
	orderID    string
	customerID string
}

func seedCustomerWithOrders(t *testing.T, store *Store) seededOrder {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := store.DB()

	customerID := uuid.NewString()
	_, err := db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email) VALUES ($1, $2, $3)
	`, customerID, "Maria Silva", "maria@example.com")
	require.NoError(t, err)

	mkOrder := func(day int, totalCents int64) string {
		orderID := uuid.NewString()
		_, err := db.ExecContext(ctx, `
			INSERT INTO orders (id, customer_id, status, total_cents, order_date)
			VALUES ($1, $2, $3, $4, $5)
		`, orderID, customerID, "confirmed", totalCents,
			time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		return orderID
	}

	first := mkOrder(5, 2100)
	_, err = db.ExecContext(ctx, `
		INSERT INTO order_items (id, order_id, product_name, quantity, price_cents)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), first, "Widget", 2, 1050)
	require.NoError(t, err)

	// Second, newer order without items.
	mkOrder(20, 0)

	return seededOrder{orderID: first, customerID: customerID}
}

func TestCustomerOrdersViewIntegration(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	seeded := seedCustomerWithOrders(t, store)
	reader := NewCustomerOrderReader(store)

	t.Run("list by customer newest first", func(t *testing.T) {
		orders, err := reader.ListByCustomer(seeded.customerID, domain.DateRange{})
		require.NoError(t, err)
		require.Len(t, orders, 2)

		require.True(t, orders[0].OrderDate.After(orders[1].OrderDate))
		require.Empty(t, orders[0].Items, "zero-item order aggregates to an empty slice")

		require.Equal(t, seeded.orderID, orders[1].OrderID)
		require.Equal(t, "Maria Silva", orders[1].CustomerName)
		require.Equal(t, "maria@example.com", orders[1].Email)
		require.Equal(t, int64(2100), orders[1].TotalCents)
		require.Len(t, orders[1].Items, 1)
		require.Equal(t, domain.OrderItem{ProductName: "Widget", Quantity: 2, PriceCents: 1050}, orders[1].Items[0])
	})

	t.Run("date bounds", func(t *testing.T) {
		orders, err := reader.ListByCustomer(seeded.customerID, domain.DateRange{
			From: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, time.March, 10, 23, 59, 59, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		require.Equal(t, seeded.orderID, orders[0].OrderID)

		_, err = reader.ListByCustomer(seeded.customerID, domain.DateRange{
			From: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		})
		require.True(t, errors.Is(err, domain.ErrNoOrdersForCustomer))
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, err := reader.ListByCustomer(uuid.NewString(), domain.DateRange{})
		require.True(t, errors.Is(err, domain.ErrNoOrdersForCustomer))
	})

	t.Run("get by order id", func(t *testing.T) {
		order, err := reader.GetByOrderID(seeded.orderID)
		require.NoError(t, err)
		require.Equal(t, seeded.customerID, order.CustomerID)
		require.Len(t, order.Items, 1)

		_, err = reader.GetByOrderID(uuid.NewString())
		require.True(t, errors.Is(err, domain.ErrOrderNotFound))
	})
}
