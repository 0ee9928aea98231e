package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wedsontavares/escribo-orders/internal/domain"
	"github.com/wedsontavares/escribo-orders/internal/mail"
)

// ConfirmationResponse is the JSON acknowledgment of the confirmation
// function. The request succeeds (200) whenever the order exists; the
// delivery outcome is reported through EmailSent and its companions.
type ConfirmationResponse struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	OrderID      string          `json:"orderId"`
	EmailSent    bool            `json:"emailSent"`
	MailResult   json.RawMessage `json:"mailResult,omitempty"`
	Error        string          `json:"error,omitempty"`
	EmailContent *mail.Message   `json:"emailContent,omitempty"`
}

// SendConfirmation renders the confirmation email for one order and
// attempts delivery. Delivery failure never fails the request: the order
// was already confirmed upstream, email is best-effort notification.
func (h *Handlers) SendConfirmation(c *gin.Context) {
	start := time.Now()
	defer func() {
		if h.metrics != nil {
			h.metrics.RecordDuration("send_order_confirmation", time.Since(start))
		}
	}()
	logger := h.requestLogger(c)

	var req SendConfirmationRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	order, err := h.orders.GetByOrderID(req.OrderID)
	if err != nil {
		// Query failures collapse into 404 like a missing row; the caller
		// cannot distinguish them and retries are its decision either way.
		if !domain.IsNotFound(err) {
			logger.WithError(err).Error("order lookup failed")
		}
		errorJSON(c, http.StatusNotFound, "Order not found", "")
		return
	}

	msg := mail.ComposeConfirmation(order)
	if h.metrics != nil {
		h.metrics.RecordConfirmation()
	}

	if h.sender == nil || !h.sender.Configured() {
		c.JSON(http.StatusOK, ConfirmationResponse{
			Success:      true,
			Message:      "Order confirmation processed (mail service not configured)",
			OrderID:      order.OrderID,
			EmailSent:    false,
			EmailContent: &msg,
		})
		return
	}

	result, err := h.sender.Send(c.Request.Context(), msg)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordEmailFailed()
		}
		logger.WithError(err).WithField("order_id", domain.ShortID(order.OrderID)).Warn("confirmation email delivery failed")
		c.JSON(http.StatusOK, ConfirmationResponse{
			Success:      true,
			Message:      "Order processed but email failed to send",
			OrderID:      order.OrderID,
			EmailSent:    false,
			Error:        err.Error(),
			EmailContent: &msg,
		})
		return
	}

	if h.metrics != nil {
		h.metrics.RecordEmailSent()
	}
	logger.WithField("order_id", domain.ShortID(order.OrderID)).Info("confirmation email sent")
	c.JSON(http.StatusOK, ConfirmationResponse{
		Success:    true,
		Message:    "Order confirmation email sent successfully",
		OrderID:    order.OrderID,
		EmailSent:  true,
		MailResult: result,
	})
}
