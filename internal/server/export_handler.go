package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/wedsontavares/escribo-orders/internal/domain"
	"github.com/wedsontavares/escribo-orders/internal/export"
)

// ExportOrders serves the customer order history as a CSV attachment.
func (h *Handlers) ExportOrders(c *gin.Context) {
	start := time.Now()
	defer func() {
		if h.metrics != nil {
			h.metrics.RecordDuration("export_orders", time.Since(start))
		}
	}()
	logger := h.requestLogger(c)

	var req ExportOrdersRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	dates, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}

	orders, err := h.orders.ListByCustomer(req.CustomerID, dates)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordExportFailed()
		}
		if errors.Is(err, domain.ErrNoOrdersForCustomer) {
			errorJSON(c, http.StatusNotFound, "No orders found for this customer", "")
			return
		}
		logger.WithError(err).Error("customer orders query failed")
		errorJSON(c, http.StatusInternalServerError, "Failed to fetch orders", err.Error())
		return
	}

	content := export.BuildCSV(orders)
	filename := export.Filename(req.CustomerID, h.now())

	if h.metrics != nil {
		h.metrics.RecordExportCompleted(dataRowCount(orders))
	}
	logger.WithFields(log.Fields{
		"customer_id": domain.ShortID(req.CustomerID),
		"orders":      len(orders),
	}).Info("order export served")

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(content)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}

// parseDateRange converts optional ISO-8601 day strings into inclusive
// bounds. Values are pre-validated; parse errors still map to 400.
func parseDateRange(startDate, endDate string) (domain.DateRange, error) {
	var dates domain.DateRange
	if startDate != "" {
		from, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return domain.DateRange{}, err
		}
		dates.From = from
	}
	if endDate != "" {
		to, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return domain.DateRange{}, err
		}
		// Inclusive day bound: cover the whole end day.
		dates.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	return dates, nil
}

// dataRowCount mirrors the CSV layout: one row per item, and one row for
// an order without items.
func dataRowCount(orders []domain.CustomerOrder) int {
	rows := 0
	for _, order := range orders {
		if len(order.Items) == 0 {
			rows++
			continue
		}
		rows += len(order.Items)
	}
	return rows
}
