package server_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wedsontavares/escribo-orders/internal/server"
)

const confirmationPath = "/functions/send-order-confirmation"

func TestSendConfirmationWrongMethod(t *testing.T) {
	router := newTestRouter(newCountingReader(), &stubSender{})

	recorder := doJSON(t, router, http.MethodGet, confirmationPath, nil)
	require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestSendConfirmationMissingOrderID(t *testing.T) {
	reader := newCountingReader()
	router := newTestRouter(reader, &stubSender{})

	recorder := doJSON(t, router, http.MethodPost, confirmationPath, map[string]string{})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "orderId is required", decodeError(t, recorder)["error"])

	_, getCalls := reader.queries()
	require.Zero(t, getCalls, "no query may run on a 400")
}

func TestSendConfirmationOrderNotFound(t *testing.T) {
	router := newTestRouter(newCountingReader(), &stubSender{})

	recorder := doJSON(t, router, http.MethodPost, confirmationPath, map[string]string{
		"orderId": "missing-order",
	})
	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, "Order not found", decodeError(t, recorder)["error"])
}

func TestSendConfirmationQueryFailureMapsToNotFound(t *testing.T) {
	router := newTestRouter(failingReader{}, &stubSender{})

	recorder := doJSON(t, router, http.MethodPost, confirmationPath, map[string]string{
		"orderId": "abc12345",
	})
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func decodeConfirmation(t *testing.T, body []byte) server.ConfirmationResponse {
	t.Helper()
	var resp server.ConfirmationResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestSendConfirmationTransportNotConfigured(t *testing.T) {
	order := makeOrder()
	sender := &stubSender{configured: false}
	router := newTestRouter(newCountingReader(order), sender)

	recorder := doJSON(t, router, http.MethodPost, confirmationPath, map[string]string{
		"orderId": order.OrderID,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeConfirmation(t, recorder.Body.Bytes())
	require.True(t, resp.Success)
	require.False(t, resp.EmailSent)
	require.Equal(t, order.OrderID, resp.OrderID)
	require.Contains(t, resp.Message, "not configured")
	require.Empty(t, resp.Error, "not-configured is not a delivery failure")
	require.NotNil(t, resp.EmailContent)
	require.Equal(t, "Confirmação do Pedido #abc12345", resp.EmailContent.Subject)
	require.Contains(t, resp.EmailContent.Body, "Olá Maria Silva")
	require.Zero(t, sender.sendCalls)
}

func TestSendConfirmationTransportFailure(t *testing.T) {
	order := makeOrder()
	sender := &stubSender{configured: true, err: errors.New("mail service error: 500")}
	router := newTestRouter(newCountingReader(order), sender)

	recorder := doJSON(t, router, http.MethodPost, confirmationPath, map[string]string{
		"orderId": order.OrderID,
	})
	require.Equal(t, http.StatusOK, recorder.Code, "delivery failure must not fail the request")

	resp := decodeConfirmation(t, recorder.Body.Bytes())
	require.True(t, resp.Success)
	require.False(t, resp.EmailSent)
	require.Contains(t, resp.Message, "failed to send")
	require.Contains(t, resp.Error, "mail service error")
	require.NotNil(t, resp.EmailContent, "rendered content is the fallback payload")
	require.Equal(t, 1, sender.sendCalls)
}

func TestSendConfirmationTransportSuccess(t *testing.T) {
	order := makeOrder()
	sender := &stubSender{configured: true, result: json.RawMessage(`{"id":"msg-1"}`)}
	router := newTestRouter(newCountingReader(order), sender)

	recorder := doJSON(t, router, http.MethodPost, confirmationPath, map[string]string{
		"orderId": order.OrderID,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeConfirmation(t, recorder.Body.Bytes())
	require.True(t, resp.Success)
	require.True(t, resp.EmailSent)
	require.Equal(t, order.OrderID, resp.OrderID)
	require.JSONEq(t, `{"id":"msg-1"}`, string(resp.MailResult))
	require.Nil(t, resp.EmailContent)

	// The message handed to the transport is the rendered confirmation.
	require.Equal(t, order.Email, sender.lastMsg.To)
	require.Contains(t, sender.lastMsg.Body, "- Widget (Qtd: 2) - R$ 10.50 cada = R$ 21.00")
	require.Contains(t, sender.lastMsg.Body, "Total: R$ 21.00")
}
