package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FunctionMetrics holds counters and histograms for the two order
// functions (CSV export and confirmation email).
type FunctionMetrics struct {
	exportsCompleted prometheus.Counter
	exportsFailed    prometheus.Counter
	exportRows       prometheus.Counter

	confirmations prometheus.Counter
	emailsSent    prometheus.Counter
	emailsFailed  prometheus.Counter

	requestDuration *prometheus.HistogramVec
}

// NewFunctionMetrics registers the collectors on the default registerer.
func NewFunctionMetrics() *FunctionMetrics {
	return newFunctionMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newFunctionMetricsWithRegisterer(registerer prometheus.Registerer) *FunctionMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &FunctionMetrics{
		exportsCompleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "escribo_exports_completed_total",
			Help: "Total number of order CSV exports served",
		}),
		exportsFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "escribo_exports_failed_total",
			Help: "Total number of order CSV exports that ended in an error response",
		}),
		exportRows: registerCounter(registerer, prometheus.CounterOpts{
			Name: "escribo_export_rows_total",
			Help: "Total number of CSV data rows rendered",
		}),
		confirmations: registerCounter(registerer, prometheus.CounterOpts{
			Name: "escribo_confirmations_processed_total",
			Help: "Total number of order confirmations processed",
		}),
		emailsSent: registerCounter(registerer, prometheus.CounterOpts{
			Name: "escribo_confirmation_emails_sent_total",
			Help: "Total number of confirmation emails accepted by the mail transport",
		}),
		emailsFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "escribo_confirmation_emails_failed_total",
			Help: "Total number of confirmation emails that failed delivery",
		}),
		requestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "escribo_function_duration_seconds",
			Help:    "Duration of function invocations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"function"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordExportCompleted counts one served export and its rendered data rows.
func (m *FunctionMetrics) RecordExportCompleted(rows int) {
	m.exportsCompleted.Inc()
	m.exportRows.Add(float64(rows))
}

// RecordExportFailed counts one export that ended in an error response.
func (m *FunctionMetrics) RecordExportFailed() {
	m.exportsFailed.Inc()
}

// RecordConfirmation counts one processed confirmation request.
func (m *FunctionMetrics) RecordConfirmation() {
	m.confirmations.Inc()
}

// RecordEmailSent counts one email accepted by the transport.
func (m *FunctionMetrics) RecordEmailSent() {
	m.emailsSent.Inc()
}

// RecordEmailFailed counts one delivery attempt rejected by the transport.
// Unconfigured transports are not counted as failures.
func (m *FunctionMetrics) RecordEmailFailed() {
	m.emailsFailed.Inc()
}

// RecordDuration records one invocation of the named function.
func (m *FunctionMetrics) RecordDuration(function string, duration time.Duration) {
	m.requestDuration.WithLabelValues(function).Observe(duration.Seconds())
}
