package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()

	m.CartItemAdded()
	m.CartItemAdded()
	m.OutOfStockRejected()
	m.OrderPlaced(120)
	m.AdminAction("delete_product")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cartAdditions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outOfStock))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersPlaced))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.adminActions.WithLabelValues("delete_product")))
}

func TestRecordRequest(t *testing.T) {
	m := New()

	m.RecordRequest(http.MethodGet, "/products", http.StatusOK, 10*time.Millisecond)
	m.RecordRequest(http.MethodGet, "/products", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/products", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/products", "4xx")))
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, "2xx", classifyStatus(204))
	assert.Equal(t, "5xx", classifyStatus(503))
	assert.Equal(t, "unknown", classifyStatus(0))
}

func TestHandler(t *testing.T) {
	m := New()
	m.CartItemAdded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_cart_additions_total 1")
}
