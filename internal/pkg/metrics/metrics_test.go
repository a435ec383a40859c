package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveTransition(t *testing.T) {
	m := New()

	m.ObserveTransition(order.Cancel, "succeeded")
	m.ObserveTransition(order.Cancel, "succeeded")
	m.ObserveTransition(order.Ship, "not_found")

	assert.InDelta(t, 2, testutil.ToFloat64(m.transitions.WithLabelValues("cancel", "succeeded")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.transitions.WithLabelValues("ship", "not_found")), 0)
}

func TestMetrics_ObserveRefund(t *testing.T) {
	m := New()

	m.ObserveRefund("gateway_failed")

	assert.InDelta(t, 1, testutil.ToFloat64(m.refunds.WithLabelValues("gateway_failed")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.refunds.WithLabelValues("succeeded")), 0)
}

func TestMetrics_MiddlewareUsesRouteTemplate(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.POST("/api/v1/orders/:orderId/cancellation", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/boom", func(echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "gateway")
	})

	for _, path := range []string{"/api/v1/orders/a/cancellation", "/api/v1/orders/b/cancellation"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.InDelta(t, 2, testutil.ToFloat64(
		m.httpRequests.WithLabelValues(http.MethodPost, "/api/v1/orders/:orderId/cancellation", "204")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(
		m.httpRequests.WithLabelValues(http.MethodGet, "/boom", "502")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveTransition(order.StartProcessing, "succeeded")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body,
		`fulfillment_order_transitions_total{outcome="succeeded",transition="start_processing"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
