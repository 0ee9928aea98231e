package domain

import "time"

// DateRange bounds a customer order query by order date. Zero values mean
// the corresponding bound is absent; both bounds are inclusive.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether ts satisfies the configured bounds.
func (r DateRange) Contains(ts time.Time) bool {
	if !r.From.IsZero() && ts.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && ts.After(r.To) {
		return false
	}
	return true
}

// CustomerOrderReader is the read-only view over v_customer_orders that
// both functions consume. Implementations own their query timeouts.
type CustomerOrderReader interface {
	// ListByCustomer returns the customer's orders within the optional date
	// range, sorted by order date descending. Returns ErrNoOrdersForCustomer
	// when nothing matches.
	ListByCustomer(customerID string, dates DateRange) ([]CustomerOrder, error)
	// GetByOrderID returns a single order or ErrOrderNotFound.
	GetByOrderID(orderID string) (CustomerOrder, error)
}
