package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/logging"

	"github.com/labstack/echo/v4"
)

type AdvanceToProcessingHandler interface {
	Handle(ctx context.Context, cmd commands.AdvanceToProcessingCommand) error
}

type MarkShippedHandler interface {
	Handle(ctx context.Context, cmd commands.MarkShippedCommand) error
}

type CancelOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
}

type GetOrderDetailsHandler interface {
	Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (queries.GetOrderDetailsQueryResponse, error)
}

type ResolveRefundIncidentHandler interface {
	Handle(ctx context.Context, cmd commands.ResolveRefundIncidentCommand) error
}

type GetUnresolvedRefundIncidentsHandler interface {
	Handle(
		ctx context.Context,
		query queries.GetUnresolvedRefundIncidentsQuery,
	) ([]queries.RefundIncidentResponse, error)
}

// Server implements servers.ServerInterface on top of the lifecycle use cases.
type Server struct {
	// Command handlers
	advanceToProcessingHandler AdvanceToProcessingHandler
	markShippedHandler         MarkShippedHandler
	cancelOrderHandler         CancelOrderHandler
	resolveIncidentHandler     ResolveRefundIncidentHandler

	// Query handlers
	getOrderDetailsHandler    GetOrderDetailsHandler
	unresolvedIncidentHandler GetUnresolvedRefundIncidentsHandler

	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	advanceToProcessingHandler AdvanceToProcessingHandler,
	markShippedHandler MarkShippedHandler,
	cancelOrderHandler CancelOrderHandler,
	getOrderDetailsHandler GetOrderDetailsHandler,
	resolveIncidentHandler ResolveRefundIncidentHandler,
	unresolvedIncidentHandler GetUnresolvedRefundIncidentsHandler,
	logger *slog.Logger,
) (*Server, error) {
	if advanceToProcessingHandler == nil {
		return nil, errs.NewValueIsRequiredError("advanceToProcessingHandler")
	}
	if markShippedHandler == nil {
		return nil, errs.NewValueIsRequiredError("markShippedHandler")
	}
	if cancelOrderHandler == nil {
		return nil, errs.NewValueIsRequiredError("cancelOrderHandler")
	}
	if getOrderDetailsHandler == nil {
		return nil, errs.NewValueIsRequiredError("getOrderDetailsHandler")
	}
	if resolveIncidentHandler == nil {
		return nil, errs.NewValueIsRequiredError("resolveIncidentHandler")
	}
	if unresolvedIncidentHandler == nil {
		return nil, errs.NewValueIsRequiredError("unresolvedIncidentHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		advanceToProcessingHandler: advanceToProcessingHandler,
		markShippedHandler:         markShippedHandler,
		cancelOrderHandler:         cancelOrderHandler,
		resolveIncidentHandler:     resolveIncidentHandler,
		getOrderDetailsHandler:     getOrderDetailsHandler,
		unresolvedIncidentHandler:  unresolvedIncidentHandler,
		logger:                     logger.With("component", "http_server"),
	}, nil
}

func (s *Server) StartOrderProcessing(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewAdvanceToProcessingCommand(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.advanceToProcessingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) ShipOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.ShipOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "request body must be a shipment",
		})
	}

	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewMarkShippedCommand(id, body.Carrier, body.TrackingNumber)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.markShippedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.writeError(ctx, err)
	}
	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return s.writeError(ctx, err)
	}
	query, err := queries.NewGetOrderDetailsQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	details, err := s.getOrderDetailsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetails(details))
}

func (s *Server) ListRefundIncidents(ctx echo.Context) error {
	incidents, err := s.unresolvedIncidentHandler.Handle(
		ctx.Request().Context(),
		queries.NewGetUnresolvedRefundIncidentsQuery(),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	resp := make([]servers.RefundIncident, 0, len(incidents))
	for _, incident := range incidents {
		resp = append(resp, servers.RefundIncident{
			Id:            incident.ID,
			OrderId:       incident.OrderID.Bytes(),
			PaymentIntent: incident.PaymentIntent,
			Cause:         incident.Cause,
			OccurredAt:    incident.OccurredAt.UTC(),
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (s *Server) ResolveRefundIncident(ctx echo.Context, incidentId servers.IncidentId) error {
	cmd, err := commands.NewResolveRefundIncidentCommand(incidentId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.resolveIncidentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func toOrderDetails(details queries.GetOrderDetailsQueryResponse) servers.OrderDetails {
	resp := servers.OrderDetails{
		Id:            details.ID.Bytes(),
		Status:        details.Status.String(),
		PaymentStatus: details.PaymentStatus.String(),
		Version:       details.Version,
		Lines:         make([]servers.OrderLine, 0, len(details.Lines)),
		Total:         details.Total.StringFixed(2),
	}

	if details.ShippingDate != nil {
		resp.Shipment = &servers.Shipment{
			Carrier:        details.Carrier,
			TrackingNumber: details.TrackingNumber,
			ShippedAt:      details.ShippingDate.UTC(),
		}
	}

	for _, line := range details.Lines {
		resp.Lines = append(resp.Lines, servers.OrderLine{
			ProductName: line.ProductName,
			Count:       line.Count,
			Price:       line.Price.StringFixed(2),
			Subtotal:    line.Subtotal.StringFixed(2),
		})
	}
	return resp
}

// writeError maps use case errors to status codes. Internal causes are
// logged, never echoed to the client.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var partial *commands.PartialFailureError
	switch {
	case errors.As(err, &partial):
		recorded := partial.IncidentRecorded
		s.log(ctx).ErrorContext(ctx.Request().Context(), "Cancellation partially failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:             http.StatusInternalServerError,
			Message:          "payment was refunded but the cancellation was not saved",
			IncidentRecorded: &recorded,
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, err)
	case errors.Is(err, ports.ErrOrderLocked):
		return respond(ctx, http.StatusConflict, err)
	case errors.Is(err, order.ErrTransitionNotAllowed):
		return respond(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return respond(ctx, http.StatusConflict, errors.New("order was modified concurrently"))
	case errors.Is(err, commands.ErrPaymentGateway):
		s.log(ctx).WarnContext(ctx.Request().Context(), "Payment gateway failed", "error", err)
		return respond(ctx, http.StatusBadGateway, commands.ErrPaymentGateway)
	case errors.Is(err, commands.ErrPersistence):
		s.log(ctx).ErrorContext(ctx.Request().Context(), "Persistence failed", "error", err)
		return respond(ctx, http.StatusInternalServerError, errors.New("internal error"))
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(ctx, http.StatusBadRequest, err)
	default:
		s.log(ctx).ErrorContext(ctx.Request().Context(), "Request failed", "error", err)
		return respond(ctx, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func (s *Server) log(ctx echo.Context) *slog.Logger {
	return logging.FromContext(ctx.Request().Context(), s.logger)
}

func respond(ctx echo.Context, status int, err error) error {
	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: err.Error(),
	})
}
