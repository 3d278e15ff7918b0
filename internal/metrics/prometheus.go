package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics storefront prometheus collectors on their own registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	cartAdditions       prometheus.Counter
	outOfStock          prometheus.Counter
	ordersPlaced        prometheus.Counter
	orderValue          prometheus.Histogram
	adminActions        *prometheus.CounterVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request durations.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint", "status"},
		),
		cartAdditions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_cart_additions_total",
			Help: "Products added to a cart.",
		}),
		outOfStock: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_out_of_stock_rejections_total",
			Help: "Add-to-cart attempts rejected because the product had no stock.",
		}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Orders placed at checkout.",
		}),
		orderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_order_value_usd",
			Help:    "Order totals in USD.",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		adminActions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_admin_actions_total",
				Help: "Catalog mutations performed by admins.",
			},
			[]string{"action"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.cartAdditions,
		m.outOfStock,
		m.ordersPlaced,
		m.orderValue,
		m.adminActions,
	)
	return m
}

// RecordRequest HTTP so'rov metrikalarini yozish
func (m *Metrics) RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	m.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

func (m *Metrics) CartItemAdded()      { m.cartAdditions.Inc() }
func (m *Metrics) OutOfStockRejected() { m.outOfStock.Inc() }

func (m *Metrics) OrderPlaced(total float64) {
	m.ordersPlaced.Inc()
	m.orderValue.Observe(total)
}

func (m *Metrics) AdminAction(action string) {
	m.adminActions.WithLabelValues(action).Inc()
}

// Handler exposes the registry for scraping
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func classifyStatus(statusCode int) string {
	if statusCode >= 100 && statusCode < 600 {
		return strconv.Itoa(statusCode/100) + "xx"
	}
	return "unknown"
}
