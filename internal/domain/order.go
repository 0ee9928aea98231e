package domain

import "time"

// OrderStatus is the externally-defined lifecycle state of an order.
// The service treats it as an opaque string; the constants below exist
// for fixtures and local seeding only.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// OrderItem is one line of a customer order as exposed by the
// v_customer_orders view.
type OrderItem struct {
	// ProductName is the display name shown in exports and emails.
	ProductName string `json:"product_name"`
	// Quantity is the number of units ordered.
	Quantity int32 `json:"quantity"`
	// PriceCents is the unit price in minor currency units (centavos).
	PriceCents int64 `json:"price_cents"`
}

// CustomerOrder is one row of the denormalized "orders with customer and
// items" projection. Rows are created and mutated entirely outside this
// service; handlers only read a snapshot at request time.
type CustomerOrder struct {
	OrderID      string
	CustomerID   string
	Status       OrderStatus
	TotalCents   int64
	OrderDate    time.Time
	CustomerName string
	Email        string
	Items        []OrderItem
}

// LineTotalCents returns quantity * unit price for one item.
func (i OrderItem) LineTotalCents() int64 {
	return int64(i.Quantity) * i.PriceCents
}

// ItemsTotalCents sums the line totals of all items. The view keeps
// TotalCents equal to this sum; consumers here never verify it.
func (o CustomerOrder) ItemsTotalCents() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.LineTotalCents()
	}
	return total
}
