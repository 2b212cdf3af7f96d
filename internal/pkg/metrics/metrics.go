// Package metrics holds the Prometheus collectors of the service. Order
// counters are fed by publishing committed order changes to Metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"menuorder/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "menuorder"

type Metrics struct {
	registry *prometheus.Registry

	Requests           *prometheus.CounterVec
	LatencyMS          *prometheus.HistogramVec
	OrdersCreated      prometheus.Counter
	StatusChanges      *prometheus.CounterVec
	OrdersRemoved      prometheus.Counter
	CheckoutRejections *prometheus.CounterVec
}

// New registers every collector, plus the Go and process collectors, on a
// registry of its own.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"method", "route"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders placed through checkout.",
		}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Order status changes by new status.",
		}, []string{"status"}),
		OrdersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_removed_total",
			Help:      "Orders removed one by one, by the console or the retention job.",
		}),
		CheckoutRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_rejections_total",
			Help:      "Checkouts that created no order, by reason.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests,
		m.LatencyMS,
		m.OrdersCreated,
		m.StatusChanges,
		m.OrdersRemoved,
		m.CheckoutRejections,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(method, route).Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) CheckoutRejected(reason string) {
	m.CheckoutRejections.WithLabelValues(reason).Inc()
}

// Publish counts committed order changes. Changes relayed from other
// instances carry their origin and are counted there.
func (m *Metrics) Publish(_ context.Context, changes ...ports.OrderChange) error {
	for _, change := range changes {
		switch change.Kind {
		case ports.OrderCreated:
			m.OrdersCreated.Inc()
		case ports.OrderStatusChanged:
			m.StatusChanges.WithLabelValues(change.Status.String()).Inc()
		case ports.OrderRemoved:
			m.OrdersRemoved.Inc()
		case ports.OrdersCleared:
		}
	}
	return nil
}
