// Package servers is the HTTP contract of api/openapi.yaml: request and
// response models, the ServerInterface and route registration in the layout
// produced by oapi-codegen for echo.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"fulfillment/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code int `json:"code"`

	// IncidentRecorded Set on a refund that succeeded while the cancellation did not commit.
	IncidentRecorded *bool  `json:"incidentRecorded,omitempty"`
	Message          string `json:"message"`
}

// OrderDetails defines model for OrderDetails.
type OrderDetails struct {
	Id            openapi_types.UUID `json:"id"`
	Lines         []OrderLine        `json:"lines"`
	PaymentStatus string             `json:"paymentStatus"`
	Shipment      *Shipment          `json:"shipment,omitempty"`
	Status        string             `json:"status"`
	Total         string             `json:"total"`
	Version       int                `json:"version"`
}

// OrderLine defines model for OrderLine.
type OrderLine struct {
	Count       int    `json:"count"`
	Price       string `json:"price"`
	ProductName string `json:"productName"`
	Subtotal    string `json:"subtotal"`
}

// RefundIncident defines model for RefundIncident.
type RefundIncident struct {
	Cause         string             `json:"cause"`
	Id            int64              `json:"id"`
	OccurredAt    time.Time          `json:"occurredAt"`
	OrderId       openapi_types.UUID `json:"orderId"`
	PaymentIntent string             `json:"paymentIntent"`
}

// Shipment defines model for Shipment.
type Shipment struct {
	Carrier        string    `json:"carrier"`
	ShippedAt      time.Time `json:"shippedAt"`
	TrackingNumber string    `json:"trackingNumber"`
}

// ShipmentRequest defines model for ShipmentRequest.
type ShipmentRequest struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"trackingNumber"`
}

// IncidentId defines model for IncidentId.
type IncidentId = int64

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// ShipOrderJSONRequestBody defines body for ShipOrder for application/json ContentType.
type ShipOrderJSONRequestBody = ShipmentRequest

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Get order details
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Cancel the order, refunding a captured payment
	// (POST /api/v1/orders/{orderId}/cancellation)
	CancelOrder(ctx echo.Context, orderId OrderId) error
	// Move the order to processing
	// (POST /api/v1/orders/{orderId}/processing)
	StartOrderProcessing(ctx echo.Context, orderId OrderId) error
	// Record the carrier hand-off
	// (POST /api/v1/orders/{orderId}/shipment)
	ShipOrder(ctx echo.Context, orderId OrderId) error
	// List refunds issued for cancellations that were not saved
	// (GET /api/v1/refund-incidents)
	ListRefundIncidents(ctx echo.Context) error
	// Mark a refund incident as reconciled
	// (POST /api/v1/refund-incidents/{incidentId}/resolution)
	ResolveRefundIncident(ctx echo.Context, incidentId IncidentId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderId)
}

// StartOrderProcessing converts echo context to params.
func (w *ServerInterfaceWrapper) StartOrderProcessing(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.StartOrderProcessing(ctx, orderId)
}

// ShipOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ShipOrder(ctx echo.Context) error {
	orderId, err := bindOrderId(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ShipOrder(ctx, orderId)
}

// ListRefundIncidents converts echo context to params.
func (w *ServerInterfaceWrapper) ListRefundIncidents(ctx echo.Context) error {
	return w.Handler.ListRefundIncidents(ctx)
}

// ResolveRefundIncident converts echo context to params.
func (w *ServerInterfaceWrapper) ResolveRefundIncident(ctx echo.Context) error {
	var incidentId IncidentId
	err := runtime.BindStyledParameterWithOptions("simple", "incidentId", ctx.Param("incidentId"), &incidentId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter incidentId: %s", err))
	}
	return w.Handler.ResolveRefundIncident(ctx, incidentId)
}

func bindOrderId(ctx echo.Context) (OrderId, error) {
	var orderId OrderId
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, prepending baseURL to
// every path.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/cancellation", wrapper.CancelOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/processing", wrapper.StartOrderProcessing)
	router.POST(baseURL+"/api/v1/orders/:orderId/shipment", wrapper.ShipOrder)
	router.GET(baseURL+"/api/v1/refund-incidents", wrapper.ListRefundIncidents)
	router.POST(baseURL+"/api/v1/refund-incidents/:incidentId/resolution", wrapper.ResolveRefundIncident)
}

// GetSwagger returns the validated OpenAPI document the routes implement.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(api.OpenAPISpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	if err := swagger.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("error validating Swagger: %w", err)
	}
	return swagger, nil
}
