// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Data metrics
	BarsLoaded     *prometheus.CounterVec
	BarsStored     *prometheus.CounterVec
	SymbolsTracked prometheus.Gauge

	// Backtest metrics
	RunsTotal       *prometheus.CounterVec
	RunDuration     *prometheus.HistogramVec
	BarsProcessed   prometheus.Counter
	TradesSimulated *prometheus.CounterVec
	SignalsEmitted  *prometheus.CounterVec

	// Reporting metrics
	ReportsGenerated *prometheus.CounterVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "equity_options_lab"
	}

	return &Metrics{
		BarsLoaded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "bars_loaded_total",
			Help:      "Total number of bars loaded from storage by backend",
		}, []string{"backend"}),
		BarsStored: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "bars_stored_total",
			Help:      "Total number of bars written to storage by backend",
		}, []string{"backend"}),
		SymbolsTracked: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "symbols_tracked",
			Help:      "Current number of symbols with stored bar history",
		}),

		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "runs_total",
			Help:      "Total number of backtest runs by engine and status",
		}, []string{"engine", "status"}),
		RunDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "run_duration_seconds",
			Help:      "Backtest run duration by engine",
			Buckets:   prometheus.DefBuckets,
		}, []string{"engine"}),
		BarsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "bars_processed_total",
			Help:      "Total number of bars processed across all runs",
		}),
		TradesSimulated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "trades_simulated_total",
			Help:      "Total number of simulated trades by engine",
		}, []string{"engine"}),
		SignalsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "signals_emitted_total",
			Help:      "Total number of entry signals acted on, by strategy",
		}, []string{"strategy"}),

		ReportsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated by format",
		}, []string{"format"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration by backend and operation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors by backend and operation",
		}, []string{"backend", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordBarsStored adds a count of bars written to storage.
func (m *Metrics) RecordBarsStored(backend string, bars int) {
	m.BarsStored.WithLabelValues(backend).Add(float64(bars))
}

// RecordBarsLoaded adds a count of bars read from storage.
func (m *Metrics) RecordBarsLoaded(backend string, bars int) {
	m.BarsLoaded.WithLabelValues(backend).Add(float64(bars))
}

// SetSymbolsTracked records the number of symbols with stored history.
func (m *Metrics) SetSymbolsTracked(symbols int) {
	m.SymbolsTracked.Set(float64(symbols))
}

// RecordSignals adds the entry signals a run acted on. Every completed
// trade originates from exactly one non-hold entry signal.
func (m *Metrics) RecordSignals(strategyName string, trades int) {
	m.SignalsEmitted.WithLabelValues(strategyName).Add(float64(trades))
}

// RecordRun records one backtest run outcome and its duration.
func (m *Metrics) RecordRun(engine, status string, durationSeconds float64) {
	m.RunsTotal.WithLabelValues(engine, status).Inc()
	m.RunDuration.WithLabelValues(engine).Observe(durationSeconds)
}

// RecordTrades adds simulated trade and bar counts for one run.
func (m *Metrics) RecordTrades(engine string, trades, bars int) {
	m.TradesSimulated.WithLabelValues(engine).Add(float64(trades))
	m.BarsProcessed.Add(float64(bars))
}

// RecordDBQuery records a query duration and, when err is non-nil, an error.
func (m *Metrics) RecordDBQuery(backend, operation string, seconds float64, err error) {
	m.DBQueryDuration.WithLabelValues(backend, operation).Observe(seconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(backend, operation).Inc()
	}
}
