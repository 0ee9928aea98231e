package memory

import (
	"sort"
	"sync"

	"github.com/wedsontavares/escribo-orders/internal/domain"
)

// CustomerOrders is a simple in-memory CustomerOrderReader used by tests
// and for running the service without Postgres. Put seeds rows; the view
// in a real deployment is populated by the order-placement subsystem.
type CustomerOrders struct {
	mu     sync.RWMutex
	orders map[string]domain.CustomerOrder
}

// NewCustomerOrders returns an empty in-memory reader.
func NewCustomerOrders() *CustomerOrders {
	return &CustomerOrders{
		orders: make(map[string]domain.CustomerOrder),
	}
}

// Put stores a copy of the order, replacing any previous row with the same id.
func (r *CustomerOrders) Put(order domain.CustomerOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.OrderID] = order
}

// ListByCustomer returns the customer's orders inside the date range,
// newest first, or ErrNoOrdersForCustomer when nothing matches.
func (r *CustomerOrders) ListByCustomer(customerID string, dates domain.DateRange) ([]domain.CustomerOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.CustomerOrder, 0, len(r.orders))
	for _, order := range r.orders {
		if order.CustomerID != customerID {
			continue
		}
		if !dates.Contains(order.OrderDate) {
			continue
		}
		result = append(result, order)
	}
	if len(result) == 0 {
		return nil, domain.ErrNoOrdersForCustomer
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].OrderDate.Equal(result[j].OrderDate) {
			return result[i].OrderDate.After(result[j].OrderDate)
		}
		return result[i].OrderID > result[j].OrderID
	})

	return result, nil
}

// GetByOrderID returns the order or ErrOrderNotFound.
func (r *CustomerOrders) GetByOrderID(orderID string) (domain.CustomerOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return domain.CustomerOrder{}, domain.ErrOrderNotFound
	}
	return order, nil
}

var _ domain.CustomerOrderReader = (*CustomerOrders)(nil)
