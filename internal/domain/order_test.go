package domain_test

import (
	"testing"
	"time"

	"github.com/wedsontavares/escribo-orders/internal/domain"
)

func TestLineTotalCents(t *testing.T) {
	item := domain.OrderItem{ProductName: "Widget", Quantity: 2, PriceCents: 1050}
	if got := item.LineTotalCents(); got != 2100 {
		t.Fatalf("LineTotalCents = %d, want 2100", got)
	}
}

func TestItemsTotalCents(t *testing.T) {
	order := domain.CustomerOrder{
		Items: []domain.OrderItem{
			{Quantity: 2, PriceCents: 1050},
			{Quantity: 1, PriceCents: 300},
		},
	}
	if got := order.ItemsTotalCents(); got != 2400 {
		t.Fatalf("ItemsTotalCents = %d, want 2400", got)
	}

	var empty domain.CustomerOrder
	if got := empty.ItemsTotalCents(); got != 0 {
		t.Fatalf("ItemsTotalCents on empty order = %d, want 0", got)
	}
}

func TestDateRangeContains(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name  string
		dates domain.DateRange
		ts    time.Time
		want  bool
	}{
		{"no bounds", domain.DateRange{}, day(10), true},
		{"inside both bounds", domain.DateRange{From: day(1), To: day(20)}, day(10), true},
		{"on from bound", domain.DateRange{From: day(10)}, day(10), true},
		{"on to bound", domain.DateRange{To: day(10)}, day(10), true},
		{"before from", domain.DateRange{From: day(10)}, day(9), false},
		{"after to", domain.DateRange{To: day(10)}, day(11), false},
		{"only from, later ok", domain.DateRange{From: day(1)}, day(25), true},
		{"only to, earlier ok", domain.DateRange{To: day(25)}, day(1), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.dates.Contains(tc.ts); got != tc.want {
				t.Fatalf("Contains(%v) = %v, want %v", tc.ts, got, tc.want)
			}
		})
	}
}
