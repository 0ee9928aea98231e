// Package server wires the two order functions into an HTTP surface:
// POST /functions/export-orders and POST /functions/send-order-confirmation.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/wedsontavares/escribo-orders/internal/domain"
	"github.com/wedsontavares/escribo-orders/internal/mail"
	"github.com/wedsontavares/escribo-orders/internal/metrics"
)

// corsHeaders is the process-wide CORS configuration; immutable after init.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
}

// Handlers groups the dependencies of the two functions.
type Handlers struct {
	orders   domain.CustomerOrderReader
	sender   mail.Sender
	metrics  *metrics.FunctionMetrics
	logger   *log.Entry
	validate *validatorv10.Validate
	now      func() time.Time
}

// NewHandlers builds the handler set. metrics may be nil (tests).
func NewHandlers(orders domain.CustomerOrderReader, sender mail.Sender, fm *metrics.FunctionMetrics, logger *log.Entry) *Handlers {
	if logger == nil {
		logger = log.WithField("component", "server")
	}
	return &Handlers{
		orders:   orders,
		sender:   sender,
		metrics:  fm,
		logger:   logger,
		validate: newValidator(),
		now:      time.Now,
	}
}

// NewRouter assembles the gin engine with CORS, request ids, recovery
// and the function routes. Wrong verbs on known routes answer 405.
func NewRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		requestIDMiddleware(),
		corsMiddleware(),
		gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
			h.logger.WithField("panic", recovered).Error("handler panicked")
			errorJSON(c, http.StatusInternalServerError, "Internal server error", "")
		}),
	)

	router.NoMethod(func(c *gin.Context) {
		errorJSON(c, http.StatusMethodNotAllowed, "Method not allowed", "")
	})

	router.POST("/functions/export-orders", h.ExportOrders)
	router.OPTIONS("/functions/export-orders", preflight)
	router.POST("/functions/send-order-confirmation", h.SendConfirmation)
	router.OPTIONS("/functions/send-order-confirmation", preflight)

	return router
}

// corsMiddleware applies the shared CORS headers to every response.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for key, value := range corsHeaders {
			c.Header(key, value)
		}
		c.Next()
	}
}

// preflight answers CORS preflight with an empty body.
func preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// requestIDMiddleware propagates X-Request-Id, generating one when absent.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-Id", requestID)
		c.Next()
	}
}

// requestLogger returns the handler logger enriched with the request id.
func (h *Handlers) requestLogger(c *gin.Context) *log.Entry {
	if requestID := c.GetString("request_id"); requestID != "" {
		return h.logger.WithField("request_id", requestID)
	}
	return h.logger
}
