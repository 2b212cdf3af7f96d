package http

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"menuorder/internal/adapters/out/events"
	"menuorder/internal/core/application/usecases/commands"
	"menuorder/internal/core/application/usecases/queries"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/core/ports"
	"menuorder/internal/generated/servers"
	"menuorder/internal/pkg/errs"
	"menuorder/internal/pkg/metrics"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	AddCartItem            commands.AddCartItemCommandHandler
	UpdateCartItemQuantity commands.UpdateCartItemQuantityCommandHandler
	RemoveCartItem         commands.RemoveCartItemCommandHandler
	ClearCart              commands.ClearCartCommandHandler
	Checkout               commands.CheckoutCommandHandler
	AdvanceOrderStatus     commands.AdvanceOrderStatusCommandHandler
	CancelOrder            commands.CancelOrderCommandHandler
	UpdateOrderStatus      commands.UpdateOrderStatusCommandHandler
	RemoveOrder            commands.RemoveOrderCommandHandler
	ClearOrders            commands.ClearOrdersCommandHandler

	GetMenu       queries.GetMenuQueryHandler
	GetCart       queries.GetCartQueryHandler
	ListOrders    queries.ListOrdersQueryHandler
	GetOrder      queries.GetOrderQueryHandler
	GetOrderStats queries.GetOrderStatsQueryHandler
}

type orderFeed interface {
	Subscribe(venueID kernel.UUID) *events.Subscription
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h        Handlers
	feed     orderFeed
	metrics  *metrics.Metrics
	logger   *slog.Logger
	upgrader websocket.Upgrader

	shutdown     chan struct{}
	shutdownOnce sync.Once
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates the HTTP server. A nil metrics disables checkout
// rejection counting.
func NewServer(h Handlers, feed orderFeed, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		h:        h,
		feed:     feed,
		metrics:  m,
		logger:   logger,
		shutdown: make(chan struct{}),
	}
}

// Close ends every open order feed.
func (s *Server) Close() {
	s.shutdownOnce.Do(func() { close(s.shutdown) })
}

// GetMenu handles GET /api/v1/venues/{venueId}/menu - retrieves the venue menu.
func (s *Server) GetMenu(ctx echo.Context, venueId servers.VenueId) error {
	venueID, err := toKernelID(venueId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetMenuQuery(venueID)
	if err != nil {
		return s.fail(ctx, err)
	}

	menu, err := s.h.GetMenu.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMenu(menu))
}

// GetCart handles GET /api/v1/venues/{venueId}/cart - retrieves the session cart.
func (s *Server) GetCart(ctx echo.Context, venueId servers.VenueId, params servers.SessionParams) error {
	venueID, err := toKernelID(venueId)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCart(ctx, http.StatusOK, venueID, params.XSessionID)
}

// ClearCart handles DELETE /api/v1/venues/{venueId}/cart - empties the session cart.
func (s *Server) ClearCart(ctx echo.Context, venueId servers.VenueId, params servers.SessionParams) error {
	venueID, err := toKernelID(venueId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewClearCartCommand(venueID, params.XSessionID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.ClearCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddCartItem handles POST /api/v1/venues/{venueId}/cart/items - adds a product to the cart.
func (s *Server) AddCartItem(ctx echo.Context, venueId servers.VenueId, params servers.SessionParams) error {
	var body servers.NewCartItem
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	venueID, err := toKernelID(venueId)
	if err != nil {
		return s.fail(ctx, err)
	}
	productID, err := toKernelID(body.ProductId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var optionIDs []kernel.UUID
	if body.OptionIds != nil {
		for _, raw := range *body.OptionIds {
			id, idErr := toKernelID(raw)
			if idErr != nil {
				return s.fail(ctx, idErr)
			}
			optionIDs = append(optionIDs, id)
		}
	}

	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	cmd, err := commands.NewAddCartItemCommand(venueID, params.XSessionID, productID, optionIDs, quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.AddCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondCart(ctx, http.StatusOK, venueID, params.XSessionID)
}

// UpdateCartItemQuantity handles PATCH /api/v1/venues/{venueId}/cart/items/{itemKey}.
func (s *Server) UpdateCartItemQuantity(
	ctx echo.Context,
	venueId servers.VenueId,
	itemKey servers.ItemKey,
	params servers.SessionParams,
) error {
	var body servers.CartItemQuantity
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	venueID, err := toKernelID(venueId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCartItemQuantityCommand(venueID, params.XSessionID, itemKey, body.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.UpdateCartItemQuantity.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondCart(ctx, http.StatusOK, venueID, params.XSessionID)
}

// RemoveCartItem handles DELETE /api/v1/venues/{venueId}/cart/items/{itemKey}.
func (s *Server) RemoveCartItem(
	ctx echo.Context,
	venueId servers.VenueId,
	itemKey servers.ItemKey,
	params servers.SessionParams,
) error {
	venueID, err := toKernelID(venueId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveCartItemCommand(venueID, params.XSessionID, itemKey)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.RemoveCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondCart(ctx, http.StatusOK, venueID, params.XSessionID)
}

// Checkout handles POST /api/v1/venues/{venueId}/checkout - places the cart as an order.
func (s *Server) Checkout(ctx echo.Context, venueId servers.VenueId, params servers.SessionParams) error {
	var body servers.CheckoutRequest
	if err := ctx.Bind(&body); err != nil {
		s.checkoutRejected("bad_request")
		return badRequest(ctx)
	}

	venueID, err := toKernelID(venueId)
	if err != nil {
		s.checkoutRejected(rejectionReason(err))
		return s.fail(ctx, err)
	}

	var kitchenNote string
	if body.KitchenNote != nil {
		kitchenNote = *body.KitchenNote
	}

	orderID := kernel.NewOrderedUUID()
	cmd, err := commands.NewCheckoutCommand(venueID, params.XSessionID, orderID, body.TableNumber, kitchenNote)
	if err != nil {
		s.checkoutRejected(rejectionReason(err))
		return s.fail(ctx, err)
	}

	if err = s.h.Checkout.Handle(ctx.Request().Context(), cmd); err != nil {
		s.checkoutRejected(rejectionReason(err))
		return s.fail(ctx, err)
	}

	return s.respondOrder(ctx, http.StatusCreated, venueID, orderID)
}

// ListOrders handles GET /api/v1/venues/{venueId}/orders - lists orders newest first.
func (s *Server) ListOrders(ctx echo.Context, venueId servers.VenueId, params servers.ListOrdersParams) error {
	venueID, err := toKernelID(venueId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var statuses []order.Status
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, parseErr := order.ParseStatus(string(raw))
			if parseErr != nil {
				return s.fail(ctx, parseErr)
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewListOrdersQuery(venueID, statuses...)
	if err != nil {
		return s.fail(ctx, err)
	}

	rows, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Order, len(rows))
	for i, row := range rows {
		response[i] = toOrder(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClearOrders handles DELETE /api/v1/venues/{venueId}/orders?confirm=true - deletes every order.
func (s *Server) ClearOrders(ctx echo.Context, venueId servers.VenueId, params servers.ClearOrdersParams) error {
	venueID, err := toKernelID(venueId)
	if err != nil {
		return s.fail(ctx, err)
	}

	confirmed := params.Confirm != nil && *params.Confirm
	cmd, err := commands.NewClearOrdersCommand(venueID, confirmed)
	if err != nil {
		return s.fail(ctx, err)
	}

	removed, err := s.h.ClearOrders.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.ClearResult{Removed: removed})
}

// GetOrderStats handles GET /api/v1/venues/{venueId}/orders/stats.
func (s *Server) GetOrderStats(ctx echo.Context, venueId servers.VenueId) error {
	venueID, err := toKernelID(venueId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderStatsQuery(venueID)
	if err != nil {
		return s.fail(ctx, err)
	}

	stats, err := s.h.GetOrderStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.OrderStats{
		Total:          stats.Total,
		Active:         stats.Active,
		TodayCount:     stats.TodayCount,
		TodayRevenue:   stats.TodayRevenue.String(),
		CurrencySymbol: stats.CurrencySymbol,
	})
}

// GetOrder handles GET /api/v1/venues/{venueId}/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, venueId servers.VenueId, orderId servers.OrderId) error {
	venueID, orderID, err := toOrderIDs(venueId, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusOK, venueID, orderID)
}

// AdvanceOrder handles POST /api/v1/venues/{venueId}/orders/{orderId}/advance.
func (s *Server) AdvanceOrder(ctx echo.Context, venueId servers.VenueId, orderId servers.OrderId) error {
	venueID, orderID, err := toOrderIDs(venueId, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(venueID, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.AdvanceOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondOrder(ctx, http.StatusOK, venueID, orderID)
}

// CancelOrder handles POST /api/v1/venues/{venueId}/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, venueId servers.VenueId, orderId servers.OrderId) error {
	venueID, orderID, err := toOrderIDs(venueId, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(venueID, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondOrder(ctx, http.StatusOK, venueID, orderID)
}

// UpdateOrderStatus handles PUT /api/v1/venues/{venueId}/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, venueId servers.VenueId, orderId servers.OrderId) error {
	var body servers.OrderStatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx)
	}

	venueID, orderID, err := toOrderIDs(venueId, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(venueID, orderID, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrder handles DELETE /api/v1/venues/{venueId}/orders/{orderId}.
func (s *Server) RemoveOrder(ctx echo.Context, venueId servers.VenueId, orderId servers.OrderId) error {
	venueID, orderID, err := toOrderIDs(venueId, orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveOrderCommand(venueID, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.RemoveOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) respondCart(ctx echo.Context, code int, venueID kernel.UUID, sessionID string) error {
	query, err := queries.NewGetCartQuery(venueID, sessionID)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.h.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(code, toCart(c))
}

func (s *Server) respondOrder(ctx echo.Context, code int, venueID, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(venueID, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(code, toOrder(o))
}

func (s *Server) checkoutRejected(reason string) {
	if s.metrics != nil {
		s.metrics.CheckoutRejected(reason)
	}
}

// statusOf maps use case errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ports.ErrCheckoutInProgress),
		errors.Is(err, commands.ErrOrderIsTerminal),
		errors.Is(err, commands.ErrOrderIsNotTerminal):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func rejectionReason(err error) string {
	switch statusOf(err) {
	case http.StatusConflict:
		return "in_progress"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusUnprocessableEntity:
		return "invalid"
	default:
		return "error"
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("route", ctx.Path()),
			slog.Any("error", err),
		)
		message = http.StatusText(code)
	}

	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}

func badRequest(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
