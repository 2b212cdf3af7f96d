package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpin "menuorder/internal/adapters/in/http"
	"menuorder/internal/adapters/out/events"
	"menuorder/internal/adapters/out/memory"
	postgres_adapter "menuorder/internal/adapters/out/postgres"
	"menuorder/internal/core/application/usecases/commands"
	"menuorder/internal/core/application/usecases/queries"
	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/venue"
	"menuorder/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const sessionID = "session-1"

type orderUoWFactory func() commands.OrderUoW

func (f orderUoWFactory) Create() commands.OrderUoW { return f() }

type checkoutUoWFactory func() commands.CheckoutUoW

func (f checkoutUoWFactory) Create() commands.CheckoutUoW { return f() }

// api serves the full HTTP stack over a SQLite order database and the
// in-memory cart store.
type api struct {
	e         *echo.Echo
	server    *httpin.Server
	hub       *events.Hub
	metrics   *metrics.Metrics
	venueID   kernel.UUID
	productID kernel.UUID
	largeID   kernel.UUID
}

func newAPI(t *testing.T) *api {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", kernel.NewUUID())
	db, err := postgres_adapter.Open(postgres_adapter.DriverSQLite, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})

	hub := events.NewHub(0, nil)
	m := metrics.New()
	factory := postgres_adapter.NewGormUnitOfWorkFactory(db, events.Fanout{hub, m}, nil)
	carts := memory.NewCartRepository()
	orders := orderUoWFactory(func() commands.OrderUoW { return factory.Create() })
	checkouts := checkoutUoWFactory(func() commands.CheckoutUoW { return factory.Create() })

	v, err := venue.NewVenue(kernel.NewUUID(), "Bistro", 10, "€", "Europe/Rome")
	require.NoError(t, err)
	require.NoError(t, factory.Create().VenueRepository().Save(ctx, v))

	largeID := kernel.NewUUID()
	small, err := catalog.NewVariationOption(kernel.NewUUID(), "Small", kernel.MustMoney("0"))
	require.NoError(t, err)
	large, err := catalog.NewVariationOption(largeID, "Large", kernel.MustMoney("1.50"))
	require.NoError(t, err)
	size, err := catalog.NewVariationGroup(kernel.NewUUID(), "Size", small, large)
	require.NoError(t, err)
	p, err := catalog.NewProduct(kernel.NewUUID(), v.ID(), "Latte", kernel.MustMoney("3.50"), "latte.png", size)
	require.NoError(t, err)
	require.NoError(t, factory.Create().ProductRepository().Save(ctx, p, 0))

	server := httpin.NewServer(httpin.Handlers{
		AddCartItem:            commands.NewAddCartItemCommandHandler(factory.Create().ProductRepository(), carts),
		UpdateCartItemQuantity: commands.NewUpdateCartItemQuantityCommandHandler(carts),
		RemoveCartItem:         commands.NewRemoveCartItemCommandHandler(carts),
		ClearCart:              commands.NewClearCartCommandHandler(carts),
		Checkout: commands.NewCheckoutCommandHandler(checkouts, carts, memory.NewCheckoutLock(),
			commands.CheckoutOptions{}),
		AdvanceOrderStatus: commands.NewAdvanceOrderStatusCommandHandler(orders),
		CancelOrder:        commands.NewCancelOrderCommandHandler(orders),
		UpdateOrderStatus:  commands.NewUpdateOrderStatusCommandHandler(orders),
		RemoveOrder:        commands.NewRemoveOrderCommandHandler(orders),
		ClearOrders:        commands.NewClearOrdersCommandHandler(orders),
		GetMenu:            queries.NewGetMenuQueryHandler(factory),
		GetCart:            queries.NewGetCartQueryHandler(carts),
		ListOrders:         queries.NewListOrdersQueryHandler(db),
		GetOrder:           queries.NewGetOrderQueryHandler(db),
		GetOrderStats:      queries.NewGetOrderStatsQueryHandler(db, time.Now),
	}, hub, m, nil)

	e, err := httpin.NewRouter(server, httpin.RouterOptions{Metrics: m, ValidateRequests: true})
	require.NoError(t, err)

	return &api{
		e:         e,
		server:    server,
		hub:       hub,
		metrics:   m,
		venueID:   v.ID(),
		productID: p.ID(),
		largeID:   largeID,
	}
}

func (a *api) path(format string, args ...any) string {
	return "/api/v1/venues/" + a.venueID.String() + fmt.Sprintf(format, args...)
}

// do sends a request with the session header and a JSON body when body is
// not nil.
func (a *api) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set("X-Session-ID", sessionID)

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *api) addLatte(t *testing.T, quantity int, optionIDs ...kernel.UUID) {
	t.Helper()
	options := make([]string, len(optionIDs))
	for i, id := range optionIDs {
		options[i] = id.String()
	}
	rec := a.do(t, http.MethodPost, a.path("/cart/items"), map[string]any{
		"productId": a.productID.String(),
		"optionIds": options,
		"quantity":  quantity,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

// placeOrder fills the cart and checks it out at table 3.
func (a *api) placeOrder(t *testing.T) string {
	t.Helper()
	a.addLatte(t, 1)
	rec := a.do(t, http.MethodPost, a.path("/checkout"), map[string]any{"tableNumber": "3"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)["id"].(string)
}
