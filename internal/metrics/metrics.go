package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics exposes application-level instruments for the credit ledger
// and the HTTP surface.
type Metrics struct {
	ledgerDebits   prometheus.Counter
	ledgerRefunds  prometheus.Counter
	reconcileRuns  prometheus.Counter
	reconcileSyncs prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New registers the instruments on the provided registerer.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ledgerDebits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vistoria_ledger_debits_total",
			Help: "Credit debits applied to agency spent counters.",
		}),
		ledgerRefunds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vistoria_ledger_refunds_total",
			Help: "Credit refunds applied to agency spent counters.",
		}),
		reconcileRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vistoria_ledger_reconcile_runs_total",
			Help: "Reconciliation routine executions.",
		}),
		reconcileSyncs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vistoria_ledger_reconcile_syncs_total",
			Help: "Reconciliation runs that corrected a drifted spent counter.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vistoria_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vistoria_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	collectors := []prometheus.Collector{
		m.ledgerDebits,
		m.ledgerRefunds,
		m.reconcileRuns,
		m.reconcileSyncs,
		m.httpRequests,
		m.httpDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}

	return m, nil
}

func NewDefault() (*Metrics, error) {
	return New(prometheus.DefaultRegisterer)
}

func (m *Metrics) IncLedgerDebit() {
	if m == nil {
		return
	}
	m.ledgerDebits.Inc()
}

func (m *Metrics) IncLedgerRefund() {
	if m == nil {
		return
	}
	m.ledgerRefunds.Inc()
}

func (m *Metrics) IncReconcileRun() {
	if m == nil {
		return
	}
	m.reconcileRuns.Inc()
}

func (m *Metrics) IncReconcileSync() {
	if m == nil {
		return
	}
	m.reconcileSyncs.Inc()
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

var Module = fx.Module("metrics",
	fx.Provide(NewDefault),
)
