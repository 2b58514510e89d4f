package http

import (
	"net/http"
	"strings"

	"warehouse/internal/adapters/in/http/api"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use case handlers the REST surface dispatches to.
type Handlers struct {
	// Command handlers
	CreateOrder          commands.CreateOrderCommandHandler
	OpenOrder            commands.OpenOrderCommandHandler
	UpdateOrder          commands.UpdateOrderCommandHandler
	DeleteOrder          commands.DeleteOrderCommandHandler
	AdvanceOrder         commands.AdvanceOrderCommandHandler
	AddPackagingEntry    commands.AddPackagingEntryCommandHandler
	RemovePackagingEntry commands.RemovePackagingEntryCommandHandler
	AssignDispatch       commands.AssignDispatchCommandHandler
	AddCollaborator      commands.AddCollaboratorCommandHandler
	LinkOrderNumber      commands.LinkOrderNumberCommandHandler
	NotifyOrder          commands.NotifyOrderCommandHandler
	RefreshOrders        commands.RefreshOrdersCommandHandler

	// Query handlers
	ListOrders          queries.ListOrdersQueryHandler
	GetOrder            queries.GetOrderQueryHandler
	GetSelectedOrder    queries.GetSelectedOrderQueryHandler
	PreviewNotification queries.PreviewNotificationQueryHandler
	GetDispatchOptions  queries.GetDispatchOptionsQueryHandler
	GetStatusCounts     queries.GetStatusCountsQueryHandler
	ExtractOrderDetails queries.ExtractOrderDetailsQueryHandler
}

// Server implements api.ServerInterface on top of the application use cases.
type Server struct {
	h        Handlers
	resolver services.DispatchResolver
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server. The resolver renders stored dispatch
// assignments in their canonical roster spelling.
func NewServer(handlers Handlers, resolver services.DispatchResolver) *Server {
	return &Server{h: handlers, resolver: resolver}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params api.ListOrdersParams) error {
	query, err := queries.NewListOrdersQuery(deref(params.View), deref(params.Q))
	if err != nil {
		return err
	}

	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s.toOrders(orders))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context, params api.OperatorParams) error {
	var body api.NewOrder
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	source, err := order.ParseSource(body.Source)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(order.DraftParams{
		OrderNumber:    body.OrderNumber,
		CustomerNumber: body.CustomerNumber,
		CustomerName:   body.CustomerName,
		Locality:       body.Locality,
		Notes:          body.Notes,
		Source:         source,
		Operator:       deref(params.XOperator),
	})
	if err != nil {
		return err
	}

	created, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, s.toOrder(created))
}

// GetSelectedOrder handles GET /api/v1/orders/selected.
func (s *Server) GetSelectedOrder(ctx echo.Context, params api.OperatorParams) error {
	query, err := queries.NewGetSelectedOrderQuery(deref(params.XOperator))
	if err != nil {
		return err
	}
	return s.respond(ctx, func() (*order.Order, error) {
		return s.h.GetSelectedOrder.Handle(ctx.Request().Context(), query)
	})
}

// OpenOrder handles GET /api/v1/orders/{id}. With an operator the order is selected
// for them; without one it is only read.
func (s *Server) OpenOrder(ctx echo.Context, id string, params api.OperatorParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	if strings.TrimSpace(deref(params.XOperator)) == "" {
		query, queryErr := queries.NewGetOrderQuery(orderID)
		if queryErr != nil {
			return queryErr
		}
		return s.respond(ctx, func() (*order.Order, error) {
			return s.h.GetOrder.Handle(ctx.Request().Context(), query)
		})
	}

	cmd, err := commands.NewOpenOrderCommand(orderID, deref(params.XOperator))
	if err != nil {
		return err
	}
	return s.respond(ctx, func() (*order.Order, error) {
		return s.h.OpenOrder.Handle(ctx.Request().Context(), cmd)
	})
}

// UpdateOrder handles PATCH /api/v1/orders/{id}.
func (s *Server) UpdateOrder(ctx echo.Context, id string, _ api.OperatorParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	var body api.OrderPatch
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	patch := order.Patch{
		CustomerNumber: body.CustomerNumber,
		CustomerName:   body.CustomerName,
		Locality:       body.Locality,
		Notes:          body.Notes,
	}
	if body.Status != nil {
		status, parseErr := order.ParseStatus(*body.Status)
		if parseErr != nil {
			return parseErr
		}
		patch.Status = &status
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, patch)
	if err != nil {
		return err
	}
	return s.respond(ctx, func() (*order.Order, error) {
		return s.h.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	})
}

// DeleteOrder handles DELETE /api/v1/orders/{id}?confirm=true.
func (s *Server) DeleteOrder(ctx echo.Context, id string, params api.DeleteOrderParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, deref(params.XOperator), deref(params.Confirm))
	if err != nil {
		return err
	}

	if err = s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrder handles POST /api/v1/orders/{id}/advance.
func (s *Server) AdvanceOrder(ctx echo.Context, id string, _ api.OperatorParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID)
	if err != nil {
		return err
	}
	return s.respond(ctx, func() (*order.Order, error) {
		return s.h.AdvanceOrder.Handle(ctx.Request().Context(), cmd)
	})
}

// AddPackagingEntry handles POST /api/v1/orders/{id}/packaging.
func (s *Server) AddPackagingEntry(ctx echo.Context, id string, _ api.OperatorParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	var body api.NewPackagingEntry
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewAddPackagingEntryCommand(orderID, toChoice(body.Deposit), toChoice(body.Type), body.Quantity)
	if err != nil {
		return err
	}
	return s.respond(ctx, func() (*order.Order, error) {
		return s.h.AddPackagingEntry.Handle(ctx.Request().Context(), cmd)
	})
}

// RemovePackagingEntry handles DELETE /api/v1/orders/{id}/packaging/{entryId}.
func (s *Server) RemovePackagingEntry(ctx echo.Context, id, entryID string, _ api.OperatorParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}
	entry, err := kernel.UUIDFromString(entryID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemovePackagingEntryCommand(orderID, entry)
	if err != nil {
		return err
	}
	return s.respond(ctx, func() (*order.Order, error) {
		return s.h.RemovePackagingEntry.Handle(ctx.Request().Context(), cmd)
	})
}

// AssignDispatch handles PUT /api/v1/orders/{id}/dispatch. A blank category clears
// the assignment.
func (s *Server) AssignDispatch(ctx echo.Context, id string, _ api.OperatorParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	var body api.DispatchSelection
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewAssignDispatchCommand(orderID, body.Category, body.Value)
	if err != nil {
		return err
	}
	return s.respond(ctx, func() (*order.Order, error) {
		return s.h.AssignDispatch.Handle(ctx.Request().Context(), cmd)
	})
}

// AddCollaborator handles POST /api/v1/orders/{id}/collaborators.
func (s *Server) AddCollaborator(ctx echo.Context, id string, _ api.OperatorParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	var body api.Collaborator
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewAddCollaboratorCommand(orderID, body.Name)
	if err != nil {
		return err
	}
	return s.respond(ctx, func() (*order.Order, error) {
		return s.h.AddCollaborator.Handle(ctx.Request().Context(), cmd)
	})
}

// LinkOrderNumber handles POST /api/v1/orders/{id}/order-numbers.
func (s *Server) LinkOrderNumber(ctx echo.Context, id string, _ api.OperatorParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	var body api.OrderNumberLink
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewLinkOrderNumberCommand(orderID, body.Number)
	if err != nil {
		return err
	}
	return s.respond(ctx, func() (*order.Order, error) {
		return s.h.LinkOrderNumber.Handle(ctx.Request().Context(), cmd)
	})
}

// PreviewNotification handles GET /api/v1/orders/{id}/notification.
func (s *Server) PreviewNotification(ctx echo.Context, id string, params api.PreviewNotificationParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	query, err := queries.NewPreviewNotificationQuery(
		orderID, deref(params.XOperator), deref(params.Category), deref(params.Value),
	)
	if err != nil {
		return err
	}

	message, err := s.h.PreviewNotification.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.Notification{Message: message})
}

// NotifyCustomer handles POST /api/v1/orders/{id}/notification.
func (s *Server) NotifyCustomer(ctx echo.Context, id string, params api.OperatorParams) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	var body api.NotificationRequest
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewNotifyOrderCommand(orderID, deref(params.XOperator), body.Phone)
	if err != nil {
		return err
	}

	result, err := s.h.NotifyOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.Notification{Message: result.Message, Link: result.Link})
}

// GetDispatchOptions handles GET /api/v1/dispatch-options.
func (s *Server) GetDispatchOptions(ctx echo.Context, params api.GetDispatchOptionsParams) error {
	query, err := queries.NewGetDispatchOptionsQuery(deref(params.Category))
	if err != nil {
		return err
	}

	options, err := s.h.GetDispatchOptions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]api.DispatchOptions, len(options))
	for i, opt := range options {
		names := opt.Options
		if names == nil {
			names = []string{}
		}
		response[i] = api.DispatchOptions{
			Category:   opt.Category.String(),
			UsesRoster: opt.UsesRoster,
			Options:    names,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetStatusCounts handles GET /api/v1/stats/orders.
func (s *Server) GetStatusCounts(ctx echo.Context) error {
	counts, err := s.h.GetStatusCounts.Handle(ctx.Request().Context(), queries.NewGetStatusCountsQuery())
	if err != nil {
		return err
	}

	response := make([]api.StatusCount, len(counts))
	for i, c := range counts {
		response[i] = api.StatusCount{Status: c.Status.String(), Label: c.Status.Label(), Count: c.Count}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ExtractOrderDetails handles POST /api/v1/extractions.
func (s *Server) ExtractOrderDetails(ctx echo.Context) error {
	var body api.ExtractionRequest
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	var (
		query queries.ExtractOrderDetailsQuery
		err   error
	)
	if body.Data != "" {
		query, err = queries.NewExtractOrderDetailsFromMedia(body.Data, body.MimeType)
	} else {
		query, err = queries.NewExtractOrderDetailsFromText(body.Text)
	}
	if err != nil {
		return err
	}

	extraction, err := s.h.ExtractOrderDetails.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.Extraction{
		CustomerName: extraction.CustomerName,
		Locality:     extraction.Locality,
	})
}

// RefreshOrders handles POST /api/v1/refresh.
func (s *Server) RefreshOrders(ctx echo.Context) error {
	orders, err := s.h.RefreshOrders.Handle(ctx.Request().Context(), commands.NewRefreshOrdersCommand())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s.toOrders(orders))
}

func (s *Server) respond(ctx echo.Context, handle func() (*order.Order, error)) error {
	o, err := handle()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s.toOrder(o))
}

func bindAndValidate(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return err
	}
	return ctx.Validate(body)
}

func toChoice(c api.Choice) order.Choice {
	if c.Other {
		return order.Other(c.Label)
	}
	return order.Preset(c.Label)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
