package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wedsontavares/escribo-orders/internal/domain"
	"github.com/wedsontavares/escribo-orders/internal/mail"
	"github.com/wedsontavares/escribo-orders/internal/server"
	"github.com/wedsontavares/escribo-orders/internal/storage/memory"
)

// countingReader wraps the in-memory view and records how many queries
// each handler executed; 400 paths must execute none.
type countingReader struct {
	mu        sync.Mutex
	inner     *memory.CustomerOrders
	listCalls int
	getCalls  int
}

func newCountingReader(orders ...domain.CustomerOrder) *countingReader {
	inner := memory.NewCustomerOrders()
	for _, order := range orders {
		inner.Put(order)
	}
	return &countingReader{inner: inner}
}

func (r *countingReader) ListByCustomer(customerID string, dates domain.DateRange) ([]domain.CustomerOrder, error) {
	r.mu.Lock()
	r.listCalls++
	r.mu.Unlock()
	return r.inner.ListByCustomer(customerID, dates)
}

func (r *countingReader) GetByOrderID(orderID string) (domain.CustomerOrder, error) {
	r.mu.Lock()
	r.getCalls++
	r.mu.Unlock()
	return r.inner.GetByOrderID(orderID)
}

func (r *countingReader) queries() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls, r.getCalls
}

// stubSender scripts the mail transport outcome for handler tests.
type stubSender struct {
	configured bool
	result     json.RawMessage
	err        error
	lastMsg    mail.Message
	sendCalls  int
}

func (s *stubSender) Configured() bool { return s.configured }

func (s *stubSender) Send(_ context.Context, msg mail.Message) (json.RawMessage, error) {
	s.sendCalls++
	s.lastMsg = msg
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestRouter(reader domain.CustomerOrderReader, sender mail.Sender) *gin.Engine {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	handlers := server.NewHandlers(reader, sender, nil, logger.WithField("component", "test"))
	return server.NewRouter(handlers)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func makeOrder() domain.CustomerOrder {
	return domain.CustomerOrder{
		OrderID:      "abc12345-6789-4abc-8def-001122334455",
		CustomerID:   "cust1234-0000-4000-8000-000000000000",
		Status:       domain.OrderStatusConfirmed,
		TotalCents:   2100,
		OrderDate:    time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC),
		CustomerName: "Maria Silva",
		Email:        "maria@example.com",
		Items: []domain.OrderItem{
			{ProductName: "Widget", Quantity: 2, PriceCents: 1050},
		},
	}
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (body=%s)", err, recorder.Body.String())
	}
	return body
}
