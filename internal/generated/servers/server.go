package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Venue settings and products
	// (GET /api/v1/venues/{venueId}/menu)
	GetMenu(ctx echo.Context, venueId VenueId) error
	// Empty the cart
	// (DELETE /api/v1/venues/{venueId}/cart)
	ClearCart(ctx echo.Context, venueId VenueId, params SessionParams) error
	// Cart of the session
	// (GET /api/v1/venues/{venueId}/cart)
	GetCart(ctx echo.Context, venueId VenueId, params SessionParams) error
	// Add a product with its variation selection
	// (POST /api/v1/venues/{venueId}/cart/items)
	AddCartItem(ctx echo.Context, venueId VenueId, params SessionParams) error
	// Remove a line
	// (DELETE /api/v1/venues/{venueId}/cart/items/{itemKey})
	RemoveCartItem(ctx echo.Context, venueId VenueId, itemKey ItemKey, params SessionParams) error
	// Set the quantity of a line; below 1 removes it
	// (PATCH /api/v1/venues/{venueId}/cart/items/{itemKey})
	UpdateCartItemQuantity(ctx echo.Context, venueId VenueId, itemKey ItemKey, params SessionParams) error
	// Turn the cart into a pending order
	// (POST /api/v1/venues/{venueId}/checkout)
	Checkout(ctx echo.Context, venueId VenueId, params SessionParams) error
	// Delete every order of the venue
	// (DELETE /api/v1/venues/{venueId}/orders)
	ClearOrders(ctx echo.Context, venueId VenueId, params ClearOrdersParams) error
	// Orders newest first, optionally filtered by status
	// (GET /api/v1/venues/{venueId}/orders)
	ListOrders(ctx echo.Context, venueId VenueId, params ListOrdersParams) error
	// Websocket stream of order changes
	// (GET /api/v1/venues/{venueId}/orders/feed)
	GetOrderFeed(ctx echo.Context, venueId VenueId) error
	// Console aggregates
	// (GET /api/v1/venues/{venueId}/orders/stats)
	GetOrderStats(ctx echo.Context, venueId VenueId) error
	// Remove a served or cancelled order
	// (DELETE /api/v1/venues/{venueId}/orders/{orderId})
	RemoveOrder(ctx echo.Context, venueId VenueId, orderId OrderId) error
	// (GET /api/v1/venues/{venueId}/orders/{orderId})
	GetOrder(ctx echo.Context, venueId VenueId, orderId OrderId) error
	// Move the order one step forward
	// (POST /api/v1/venues/{venueId}/orders/{orderId}/advance)
	AdvanceOrder(ctx echo.Context, venueId VenueId, orderId OrderId) error
	// (POST /api/v1/venues/{venueId}/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, venueId VenueId, orderId OrderId) error
	// Overwrite the status
	// (PUT /api/v1/venues/{venueId}/orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, venueId VenueId, orderId OrderId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathParameter(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func bindSessionParams(ctx echo.Context) (SessionParams, error) {
	var params SessionParams

	headers := ctx.Request().Header
	valueList, found := headers[http.CanonicalHeaderKey("X-Session-ID")]
	if !found {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-Session-ID is required, but not found")
	}
	if n := len(valueList); n != 1 {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-Session-ID, got %d", n))
	}

	var XSessionID string
	err := runtime.BindStyledParameterWithOptions("simple", "X-Session-ID", valueList[0], &XSessionID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Session-ID: %s", err))
	}
	params.XSessionID = XSessionID

	return params, nil
}

// GetMenu converts echo context to params.
func (w *ServerInterfaceWrapper) GetMenu(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}
	return w.Handler.GetMenu(ctx, venueId)
}

// ClearCart converts echo context to params.
func (w *ServerInterfaceWrapper) ClearCart(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}
	params, err := bindSessionParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ClearCart(ctx, venueId, params)
}

// GetCart converts echo context to params.
func (w *ServerInterfaceWrapper) GetCart(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}
	params, err := bindSessionParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetCart(ctx, venueId, params)
}

// AddCartItem converts echo context to params.
func (w *ServerInterfaceWrapper) AddCartItem(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}
	params, err := bindSessionParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AddCartItem(ctx, venueId, params)
}

// RemoveCartItem converts echo context to params.
func (w *ServerInterfaceWrapper) RemoveCartItem(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}
	var itemKey ItemKey
	if err := bindPathParameter(ctx, "itemKey", &itemKey); err != nil {
		return err
	}
	params, err := bindSessionParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RemoveCartItem(ctx, venueId, itemKey, params)
}

// UpdateCartItemQuantity converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateCartItemQuantity(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}
	var itemKey ItemKey
	if err := bindPathParameter(ctx, "itemKey", &itemKey); err != nil {
		return err
	}
	params, err := bindSessionParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateCartItemQuantity(ctx, venueId, itemKey, params)
}

// Checkout converts echo context to params.
func (w *ServerInterfaceWrapper) Checkout(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}
	params, err := bindSessionParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.Checkout(ctx, venueId, params)
}

// ClearOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ClearOrders(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}

	var params ClearOrdersParams
	if err := runtime.BindQueryParameter("form", true, false, "confirm", ctx.QueryParams(), &params.Confirm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter confirm: %s", err))
	}

	return w.Handler.ClearOrders(ctx, venueId, params)
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}

	var params ListOrdersParams
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListOrders(ctx, venueId, params)
}

// GetOrderFeed converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderFeed(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}
	return w.Handler.GetOrderFeed(ctx, venueId)
}

// GetOrderStats converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderStats(ctx echo.Context) error {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return err
	}
	return w.Handler.GetOrderStats(ctx, venueId)
}

func (w *ServerInterfaceWrapper) bindOrderPath(ctx echo.Context) (VenueId, OrderId, error) {
	var venueId VenueId
	if err := bindPathParameter(ctx, "venueId", &venueId); err != nil {
		return venueId, OrderId{}, err
	}
	var orderId OrderId
	if err := bindPathParameter(ctx, "orderId", &orderId); err != nil {
		return venueId, orderId, err
	}
	return venueId, orderId, nil
}

// RemoveOrder converts echo context to params.
func (w *ServerInterfaceWrapper) RemoveOrder(ctx echo.Context) error {
	venueId, orderId, err := w.bindOrderPath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RemoveOrder(ctx, venueId, orderId)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	venueId, orderId, err := w.bindOrderPath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, venueId, orderId)
}

// AdvanceOrder converts echo context to params.
func (w *ServerInterfaceWrapper) AdvanceOrder(ctx echo.Context) error {
	venueId, orderId, err := w.bindOrderPath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AdvanceOrder(ctx, venueId, orderId)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	venueId, orderId, err := w.bindOrderPath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, venueId, orderId)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	venueId, orderId, err := w.bindOrderPath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, venueId, orderId)
}

// EchoRouter is the subset of echo.Echo and echo.Group the handlers are
// registered on.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/venues/:venueId/menu", wrapper.GetMenu)
	router.DELETE(baseURL+"/api/v1/venues/:venueId/cart", wrapper.ClearCart)
	router.GET(baseURL+"/api/v1/venues/:venueId/cart", wrapper.GetCart)
	router.POST(baseURL+"/api/v1/venues/:venueId/cart/items", wrapper.AddCartItem)
	router.DELETE(baseURL+"/api/v1/venues/:venueId/cart/items/:itemKey", wrapper.RemoveCartItem)
	router.PATCH(baseURL+"/api/v1/venues/:venueId/cart/items/:itemKey", wrapper.UpdateCartItemQuantity)
	router.POST(baseURL+"/api/v1/venues/:venueId/checkout", wrapper.Checkout)
	router.DELETE(baseURL+"/api/v1/venues/:venueId/orders", wrapper.ClearOrders)
	router.GET(baseURL+"/api/v1/venues/:venueId/orders", wrapper.ListOrders)
	router.GET(baseURL+"/api/v1/venues/:venueId/orders/feed", wrapper.GetOrderFeed)
	router.GET(baseURL+"/api/v1/venues/:venueId/orders/stats", wrapper.GetOrderStats)
	router.DELETE(baseURL+"/api/v1/venues/:venueId/orders/:orderId", wrapper.RemoveOrder)
	router.GET(baseURL+"/api/v1/venues/:venueId/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/venues/:venueId/orders/:orderId/advance", wrapper.AdvanceOrder)
	router.POST(baseURL+"/api/v1/venues/:venueId/orders/:orderId/cancel", wrapper.CancelOrder)
	router.PUT(baseURL+"/api/v1/venues/:venueId/orders/:orderId/status", wrapper.UpdateOrderStatus)
}
