// Package export renders customer order history as a downloadable CSV
// document, one row per (order, item) pair.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/wedsontavares/escribo-orders/internal/domain"
)

// dateLayout is the localized day/month/year form used in exports.
const dateLayout = "02/01/2006"

var csvHeader = strings.Join([]string{
	"Order ID",
	"Order Date",
	"Status",
	"Customer Name",
	"Customer Email",
	"Product Name",
	"Quantity",
	"Unit Price (R$)",
	"Item Total (R$)",
	"Order Total (R$)",
}, ",")

// BuildCSV renders the header row plus one data row per (order, item).
// Orders without items emit exactly one row with zeroed item fields, so
// every order is represented at least once.
func BuildCSV(orders []domain.CustomerOrder) string {
	rows := make([]string, 0, len(orders)+1)
	rows = append(rows, csvHeader)

	for _, order := range orders {
		orderDate := order.OrderDate.Format(dateLayout)
		orderTotal := domain.FormatCents(order.TotalCents)

		if len(order.Items) == 0 {
			rows = append(rows, strings.Join([]string{
				quote(domain.ShortID(order.OrderID)),
				quote(orderDate),
				quote(string(order.Status)),
				quote(order.CustomerName),
				quote(order.Email),
				quote(""),
				"0",
				"0.00",
				"0.00",
				orderTotal,
			}, ","))
			continue
		}

		for _, item := range order.Items {
			rows = append(rows, strings.Join([]string{
				quote(domain.ShortID(order.OrderID)),
				quote(orderDate),
				quote(string(order.Status)),
				quote(order.CustomerName),
				quote(order.Email),
				quote(item.ProductName),
				strconv.Itoa(int(item.Quantity)),
				domain.FormatCents(item.PriceCents),
				domain.FormatCents(item.LineTotalCents()),
				orderTotal,
			}, ","))
		}
	}

	return strings.Join(rows, "\n")
}

// Filename builds the attachment name: truncated customer id plus a UTC
// timestamp with colons replaced by hyphens.
func Filename(customerID string, now time.Time) string {
	return "orders_" + domain.ShortID(customerID) + "_" + now.UTC().Format("2006-01-02T15-04-05") + ".csv"
}

// quote wraps a value in double quotes. Embedded quotes and commas are
// NOT escaped; consumers depend on the verbatim quote-wrapped format.
func quote(value string) string {
	return `"` + value + `"`
}
