package domain

import "errors"

var (
	// ErrOrderNotFound is returned when a single order lookup matches nothing.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNoOrdersForCustomer is returned when a customer query matches zero orders.
	// Empty export results are treated as an error, not an empty file.
	ErrNoOrdersForCustomer = errors.New("no orders found for this customer")
	// ErrMailNotConfigured signals that no mail transport endpoint/key is set.
	ErrMailNotConfigured = errors.New("mail service not configured")
	// ErrMailDelivery wraps a transport-level delivery failure. Delivery
	// failures never escalate to an error response.
	ErrMailDelivery = errors.New("mail delivery failed")
)

// IsNotFound reports whether err maps to the 404 failure class.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrNoOrdersForCustomer)
}
