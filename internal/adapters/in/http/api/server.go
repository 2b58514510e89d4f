package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const operatorHeader = "X-Operator"

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List orders of a view, optionally filtered by a search term
	// (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Create an order
	// (POST /orders)
	CreateOrder(ctx echo.Context, params OperatorParams) error
	// The order the acting operator has open
	// (GET /orders/selected)
	GetSelectedOrder(ctx echo.Context, params OperatorParams) error
	// Open an order for the acting operator
	// (GET /orders/{id})
	OpenOrder(ctx echo.Context, id string, params OperatorParams) error
	// Edit order details
	// (PATCH /orders/{id})
	UpdateOrder(ctx echo.Context, id string, params OperatorParams) error
	// Delete an order
	// (DELETE /orders/{id})
	DeleteOrder(ctx echo.Context, id string, params DeleteOrderParams) error
	// Move the order to the next status
	// (POST /orders/{id}/advance)
	AdvanceOrder(ctx echo.Context, id string, params OperatorParams) error
	// Record parcels taken from a deposit
	// (POST /orders/{id}/packaging)
	AddPackagingEntry(ctx echo.Context, id string, params OperatorParams) error
	// Remove one packaging entry
	// (DELETE /orders/{id}/packaging/{entryId})
	RemovePackagingEntry(ctx echo.Context, id string, entryID string, params OperatorParams) error
	// Set or clear the dispatch assignment
	// (PUT /orders/{id}/dispatch)
	AssignDispatch(ctx echo.Context, id string, params OperatorParams) error
	// Credit a collaborator on the order
	// (POST /orders/{id}/collaborators)
	AddCollaborator(ctx echo.Context, id string, params OperatorParams) error
	// Link further order numbers
	// (POST /orders/{id}/order-numbers)
	LinkOrderNumber(ctx echo.Context, id string, params OperatorParams) error
	// Render the status message without sending it
	// (GET /orders/{id}/notification)
	PreviewNotification(ctx echo.Context, id string, params PreviewNotificationParams) error
	// Compose the status message and hand it off
	// (POST /orders/{id}/notification)
	NotifyCustomer(ctx echo.Context, id string, params OperatorParams) error
	// Dispatch categories and roster names
	// (GET /dispatch-options)
	GetDispatchOptions(ctx echo.Context, params GetDispatchOptionsParams) error
	// Number of orders per status
	// (GET /stats/orders)
	GetStatusCounts(ctx echo.Context) error
	// Propose customer details from text or a picture
	// (POST /extractions)
	ExtractOrderDetails(ctx echo.Context) error
	// Reload all orders from the store
	// (POST /refresh)
	RefreshOrders(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPath(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func bindOperator(ctx echo.Context) (*string, error) {
	valueList, found := ctx.Request().Header[http.CanonicalHeaderKey(operatorHeader)]
	if !found {
		return nil, nil
	}
	if n := len(valueList); n != 1 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for %s, got %d", operatorHeader, n))
	}

	var operator string
	err := runtime.BindStyledParameterWithOptions("simple", operatorHeader, valueList[0], &operator,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", operatorHeader, err))
	}
	return &operator, nil
}

func bindQuery(ctx echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// withID binds the order id path parameter and the operator header.
func (w *ServerInterfaceWrapper) withID(
	handle func(ctx echo.Context, id string, params OperatorParams) error,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPath(ctx, "id")
		if err != nil {
			return err
		}
		var params OperatorParams
		if params.XOperator, err = bindOperator(ctx); err != nil {
			return err
		}
		return handle(ctx, id, params)
	}
}

// ListOrders binds the view and q query parameters.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	if err := bindQuery(ctx, "view", &params.View); err != nil {
		return err
	}
	if err := bindQuery(ctx, "q", &params.Q); err != nil {
		return err
	}
	return w.Handler.ListOrders(ctx, params)
}

// CreateOrder binds the operator header.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var params OperatorParams
	var err error
	if params.XOperator, err = bindOperator(ctx); err != nil {
		return err
	}
	return w.Handler.CreateOrder(ctx, params)
}

// GetSelectedOrder binds the operator header.
func (w *ServerInterfaceWrapper) GetSelectedOrder(ctx echo.Context) error {
	var params OperatorParams
	var err error
	if params.XOperator, err = bindOperator(ctx); err != nil {
		return err
	}
	return w.Handler.GetSelectedOrder(ctx, params)
}

// DeleteOrder binds the id, the confirm flag and the operator header.
func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	id, err := bindPath(ctx, "id")
	if err != nil {
		return err
	}
	var params DeleteOrderParams
	if err = bindQuery(ctx, "confirm", &params.Confirm); err != nil {
		return err
	}
	if params.XOperator, err = bindOperator(ctx); err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, id, params)
}

// RemovePackagingEntry binds both path ids and the operator header.
func (w *ServerInterfaceWrapper) RemovePackagingEntry(ctx echo.Context) error {
	id, err := bindPath(ctx, "id")
	if err != nil {
		return err
	}
	entryID, err := bindPath(ctx, "entryId")
	if err != nil {
		return err
	}
	var params OperatorParams
	if params.XOperator, err = bindOperator(ctx); err != nil {
		return err
	}
	return w.Handler.RemovePackagingEntry(ctx, id, entryID, params)
}

// PreviewNotification binds the dispatch override and the operator header.
func (w *ServerInterfaceWrapper) PreviewNotification(ctx echo.Context) error {
	id, err := bindPath(ctx, "id")
	if err != nil {
		return err
	}
	var params PreviewNotificationParams
	if err = bindQuery(ctx, "category", &params.Category); err != nil {
		return err
	}
	if err = bindQuery(ctx, "value", &params.Value); err != nil {
		return err
	}
	if params.XOperator, err = bindOperator(ctx); err != nil {
		return err
	}
	return w.Handler.PreviewNotification(ctx, id, params)
}

// GetDispatchOptions binds the category query parameter.
func (w *ServerInterfaceWrapper) GetDispatchOptions(ctx echo.Context) error {
	var params GetDispatchOptionsParams
	if err := bindQuery(ctx, "category", &params.Category); err != nil {
		return err
	}
	return w.Handler.GetDispatchOptions(ctx, params)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL adds each server route under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/orders", w.ListOrders)
	router.POST(baseURL+"/orders", w.CreateOrder)
	router.GET(baseURL+"/orders/selected", w.GetSelectedOrder)
	router.GET(baseURL+"/orders/:id", w.withID(si.OpenOrder))
	router.PATCH(baseURL+"/orders/:id", w.withID(si.UpdateOrder))
	router.DELETE(baseURL+"/orders/:id", w.DeleteOrder)
	router.POST(baseURL+"/orders/:id/advance", w.withID(si.AdvanceOrder))
	router.POST(baseURL+"/orders/:id/packaging", w.withID(si.AddPackagingEntry))
	router.DELETE(baseURL+"/orders/:id/packaging/:entryId", w.RemovePackagingEntry)
	router.PUT(baseURL+"/orders/:id/dispatch", w.withID(si.AssignDispatch))
	router.POST(baseURL+"/orders/:id/collaborators", w.withID(si.AddCollaborator))
	router.POST(baseURL+"/orders/:id/order-numbers", w.withID(si.LinkOrderNumber))
	router.GET(baseURL+"/orders/:id/notification", w.PreviewNotification)
	router.POST(baseURL+"/orders/:id/notification", w.withID(si.NotifyCustomer))
	router.GET(baseURL+"/dispatch-options", w.GetDispatchOptions)
	router.GET(baseURL+"/stats/orders", si.GetStatusCounts)
	router.POST(baseURL+"/extractions", si.ExtractOrderDetails)
	router.POST(baseURL+"/refresh", si.RefreshOrders)
}
