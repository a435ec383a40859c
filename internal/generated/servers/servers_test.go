package servers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/generated/servers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingServer struct {
	operation  string
	orderID    servers.OrderId
	incidentID servers.IncidentId
}

func (s *recordingServer) record(ctx echo.Context, op string, id servers.OrderId) error {
	s.operation = op
	s.orderID = id
	return ctx.NoContent(http.StatusNoContent)
}

func (s *recordingServer) GetOrder(ctx echo.Context, id servers.OrderId) error {
	return s.record(ctx, "GetOrder", id)
}

func (s *recordingServer) CancelOrder(ctx echo.Context, id servers.OrderId) error {
	return s.record(ctx, "CancelOrder", id)
}

func (s *recordingServer) StartOrderProcessing(ctx echo.Context, id servers.OrderId) error {
	return s.record(ctx, "StartOrderProcessing", id)
}

func (s *recordingServer) ShipOrder(ctx echo.Context, id servers.OrderId) error {
	return s.record(ctx, "ShipOrder", id)
}

func (s *recordingServer) ListRefundIncidents(ctx echo.Context) error {
	s.operation = "ListRefundIncidents"
	return ctx.NoContent(http.StatusNoContent)
}

func (s *recordingServer) ResolveRefundIncident(ctx echo.Context, id servers.IncidentId) error {
	s.operation = "ResolveRefundIncident"
	s.incidentID = id
	return ctx.NoContent(http.StatusNoContent)
}

func TestRegisterHandlers_RoutesToOperations(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		method    string
		path      string
		operation string
	}{
		{http.MethodGet, "/api/v1/orders/" + id.String(), "GetOrder"},
		{http.MethodPost, "/api/v1/orders/" + id.String() + "/processing", "StartOrderProcessing"},
		{http.MethodPost, "/api/v1/orders/" + id.String() + "/shipment", "ShipOrder"},
		{http.MethodPost, "/api/v1/orders/" + id.String() + "/cancellation", "CancelOrder"},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			e := echo.New()
			si := &recordingServer{}
			servers.RegisterHandlers(e, si)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tt.operation, si.operation)
			assert.Equal(t, id, si.orderID)
		})
	}
}

func TestRegisterHandlers_RefundIncidentRoutes(t *testing.T) {
	e := echo.New()
	si := &recordingServer{}
	servers.RegisterHandlers(e, si)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/refund-incidents", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "ListRefundIncidents", si.operation)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/refund-incidents/42/resolution", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "ResolveRefundIncident", si.operation)
	assert.Equal(t, servers.IncidentId(42), si.incidentID)

	si.operation = ""
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/refund-incidents/abc/resolution", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, si.operation)
}

func TestRegisterHandlers_MalformedOrderIDIsBadRequest(t *testing.T) {
	e := echo.New()
	si := &recordingServer{}
	servers.RegisterHandlers(e, si)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders/not-a-uuid/cancellation", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, si.operation)
}

func TestGetSwagger_DescribesEveryRoute(t *testing.T) {
	swagger, err := servers.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/api/v1/orders/{orderId}",
		"/api/v1/orders/{orderId}/processing",
		"/api/v1/orders/{orderId}/shipment",
		"/api/v1/orders/{orderId}/cancellation",
		"/api/v1/refund-incidents",
		"/api/v1/refund-incidents/{incidentId}/resolution",
	} {
		assert.NotNil(t, swagger.Paths.Find(path), path)
	}
}
