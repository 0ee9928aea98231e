package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/wedsontavares/escribo-orders/internal/domain"
	healthcheck "github.com/wedsontavares/escribo-orders/internal/health"
	"github.com/wedsontavares/escribo-orders/internal/mail"
	"github.com/wedsontavares/escribo-orders/internal/metrics"
	"github.com/wedsontavares/escribo-orders/internal/server"
	"github.com/wedsontavares/escribo-orders/internal/storage/memory"
	"github.com/wedsontavares/escribo-orders/internal/storage/postgres"
	"github.com/wedsontavares/escribo-orders/internal/version"
)

// Config carries the runtime settings of the service.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	PostgresDSN string
	MailAPIURL  string
	MailAPIKey  string
	MailFrom    string
}

// DefaultConfig returns the default listen addresses.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// Run wires the dependencies, starts the function server plus the
// operational listener and blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	healthHandler := healthcheck.NewHandler(version.GetVersion())

	// Order view: Postgres when a DSN is configured, in-memory otherwise
	// (local development and tests run without a database).
	var orders domain.CustomerOrderReader
	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		}()
		orders = postgres.NewCustomerOrderReader(store)
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			return store.Ping(context.Background())
		}))
		logger.Info("postgres order view initialized")
	} else {
		logger.Warn("no postgres DSN configured, using empty in-memory order view")
		orders = memory.NewCustomerOrders()
	}

	// Mail transport is optional: without endpoint and key the
	// confirmation function reports emailSent=false with the rendered
	// content instead of delivering.
	sender := mail.NewClient(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom, logger.WithField("component", "mail"))
	if sender.Configured() {
		logger.Info("mail transport configured")
	} else {
		logger.Warn("mail transport not configured, confirmations will not be delivered")
	}

	functionMetrics := metrics.NewFunctionMetrics()
	handlers := server.NewHandlers(orders, sender, functionMetrics, logger.WithField("layer", "http"))
	router := server.NewRouter(handlers)

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("function server listening on %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping servers")
		shutdownHTTP(srv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer serves /metrics, /healthz and /livez on a separate listener.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("metrics available at %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP stops an HTTP server gracefully with a bounded timeout.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
