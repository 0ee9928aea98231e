package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/wedsontavares/escribo-orders/internal/domain"
)

const opTimeout = 5 * time.Second

// customerOrderReader reads the denormalized v_customer_orders view.
// One row per order; items arrive pre-aggregated as a JSON array.
type customerOrderReader struct {
	db *sql.DB
}

// NewCustomerOrderReader creates the PostgreSQL implementation of
// domain.CustomerOrderReader.
func NewCustomerOrderReader(store *Store) domain.CustomerOrderReader {
	return &customerOrderReader{db: store.DB()}
}

const viewColumns = `
	order_id, customer_id, status, total_cents, order_date,
	customer_name, email, items
`

func (r *customerOrderReader) ListByCustomer(customerID string, dates domain.DateRange) ([]domain.CustomerOrder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `SELECT ` + viewColumns + ` FROM v_customer_orders WHERE customer_id = $1`
	args := []any{customerID}

	if !dates.From.IsZero() {
		args = append(args, dates.From)
		query += " AND order_date >= $" + strconv.Itoa(len(args))
	}
	if !dates.To.IsZero() {
		args = append(args, dates.To)
		query += " AND order_date <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY order_date DESC, order_id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.CustomerOrder, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrNoOrdersForCustomer
	}

	return orders, nil
}

func (r *customerOrderReader) GetByOrderID(orderID string) (domain.CustomerOrder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx,
		`SELECT `+viewColumns+` FROM v_customer_orders WHERE order_id = $1`, orderID)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CustomerOrder{}, domain.ErrOrderNotFound
		}
		return domain.CustomerOrder{}, err
	}

	return order, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.CustomerOrder, error) {
	var (
		order    domain.CustomerOrder
		status   string
		itemsRaw []byte
	)
	if err := row.Scan(
		&order.OrderID, &order.CustomerID, &status, &order.TotalCents,
		&order.OrderDate, &order.CustomerName, &order.Email, &itemsRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CustomerOrder{}, err
		}
		return domain.CustomerOrder{}, fmt.Errorf("scan customer order row: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	if len(itemsRaw) > 0 {
		if err := json.Unmarshal(itemsRaw, &order.Items); err != nil {
			return domain.CustomerOrder{}, fmt.Errorf("decode order items for %s: %w", order.OrderID, err)
		}
	}
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}

	return order, nil
}

var _ domain.CustomerOrderReader = (*customerOrderReader)(nil)
