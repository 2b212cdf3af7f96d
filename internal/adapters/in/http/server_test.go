package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/generated/servers"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestGetMenu(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodGet, a.path("/menu"), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	menu := decode[servers.Menu](t, rec)
	assert.Equal(t, "Bistro", menu.Name)
	assert.Equal(t, "€", menu.CurrencySymbol)
	assert.Len(t, menu.TableNumbers, 10)
	require.Len(t, menu.Products, 1)
	assert.Equal(t, "Latte", menu.Products[0].Name)
	assert.Equal(t, "3.50", menu.Products[0].BasePrice)
	require.Len(t, menu.Products[0].VariationGroups, 1)
	assert.Equal(t, "1.50", menu.Products[0].VariationGroups[0].Options[1].PriceAdjustment)
}

func TestGetMenu_UnknownVenue(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodGet, "/api/v1/venues/"+kernel.NewUUID().String()+"/menu", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decode[servers.Error](t, rec).Code)
}

func TestCartFlow(t *testing.T) {
	a := newAPI(t)

	a.addLatte(t, 2, a.largeID)
	a.addLatte(t, 1, a.largeID)

	rec := a.do(t, http.MethodGet, a.path("/cart"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	c := decode[servers.Cart](t, rec)
	require.Len(t, c.Items, 1, "same selection merges into one line")
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, "5.00", c.Items[0].UnitPrice)
	assert.Equal(t, "15.00", c.Total)
	require.Len(t, c.Items[0].Variations, 1)
	assert.Equal(t, "Large", c.Items[0].Variations[0].OptionName)
	key := c.Items[0].Key

	rec = a.do(t, http.MethodPatch, a.path("/cart/items/%s", key), map[string]any{"quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "5.00", decode[servers.Cart](t, rec).Total)

	a.addLatte(t, 1)
	rec = a.do(t, http.MethodDelete, a.path("/cart/items/%s", key), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	c = decode[servers.Cart](t, rec)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "3.50", c.Total)

	rec = a.do(t, http.MethodDelete, a.path("/cart"), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = a.do(t, http.MethodGet, a.path("/cart"), nil)
	c = decode[servers.Cart](t, rec)
	assert.Empty(t, c.Items)
	assert.Equal(t, "0.00", c.Total)
	assert.Zero(t, c.ItemCount)
}

func TestUpdateCartItemQuantity_ZeroRemovesLine(t *testing.T) {
	a := newAPI(t)
	a.addLatte(t, 2)
	key := decode[servers.Cart](t, a.do(t, http.MethodGet, a.path("/cart"), nil)).Items[0].Key

	rec := a.do(t, http.MethodPatch, a.path("/cart/items/%s", key), map[string]any{"quantity": 0})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[servers.Cart](t, rec).Items)
}

func TestAddCartItem_Errors(t *testing.T) {
	a := newAPI(t)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{name: "malformed product id", body: map[string]any{"productId": "latte"}, want: http.StatusBadRequest},
		{name: "unknown product", body: map[string]any{"productId": kernel.NewUUID().String()}, want: http.StatusNotFound},
		{
			name: "foreign option",
			body: map[string]any{"productId": a.productID.String(), "optionIds": []string{kernel.NewUUID().String()}},
			want: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(t, http.MethodPost, a.path("/cart/items"), tt.body)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestCart_RequiresSessionHeader(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, a.path("/cart"), nil)
	rec := httptest.NewRecorder()

	a.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout(t *testing.T) {
	a := newAPI(t)
	a.addLatte(t, 2, a.largeID)

	rec := a.do(t, http.MethodPost, a.path("/checkout"), map[string]any{
		"tableNumber": "3",
		"kitchenNote": "oat milk",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	o := decode[servers.Order](t, rec)
	assert.Equal(t, servers.OrderStatusPending, o.Status)
	assert.Equal(t, "3", o.TableNumber)
	require.NotNil(t, o.KitchenNote)
	assert.Equal(t, "oat milk", *o.KitchenNote)
	assert.Equal(t, "10.00", o.Total)
	assert.Equal(t, 2, o.ItemCount)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Latte", o.Items[0].Name)

	c := decode[servers.Cart](t, a.do(t, http.MethodGet, a.path("/cart"), nil))
	assert.Empty(t, c.Items, "checkout clears the cart")
	assert.InDelta(t, 1, testutil.ToFloat64(a.metrics.OrdersCreated), 0)
}

func TestCheckout_Rejected(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodPost, a.path("/checkout"), map[string]any{"tableNumber": "3"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "empty cart")

	a.addLatte(t, 1)
	rec = a.do(t, http.MethodPost, a.path("/checkout"), map[string]any{"tableNumber": "11"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "no such table")

	c := decode[servers.Cart](t, a.do(t, http.MethodGet, a.path("/cart"), nil))
	assert.Len(t, c.Items, 1, "a rejected checkout keeps the cart")
	assert.InDelta(t, 2, testutil.ToFloat64(a.metrics.CheckoutRejections.WithLabelValues("invalid")), 0)
	assert.Zero(t, testutil.ToFloat64(a.metrics.OrdersCreated))
}

func TestOrderConsole(t *testing.T) {
	a := newAPI(t)
	id := a.placeOrder(t)

	rec := a.do(t, http.MethodPost, a.path("/orders/%s/advance", id), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, servers.OrderStatusPreparing, decode[servers.Order](t, rec).Status)

	rec = a.do(t, http.MethodDelete, a.path("/orders/%s", id), nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "active orders cannot be removed")

	rec = a.do(t, http.MethodPost, a.path("/orders/%s/cancel", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, servers.OrderStatusCancelled, decode[servers.Order](t, rec).Status)

	rec = a.do(t, http.MethodPost, a.path("/orders/%s/cancel", id), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do(t, http.MethodPost, a.path("/orders/%s/advance", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, servers.OrderStatusCancelled, decode[servers.Order](t, rec).Status, "terminal orders stay put")

	rec = a.do(t, http.MethodDelete, a.path("/orders/%s", id), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodGet, a.path("/orders/%s", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	a := newAPI(t)
	id := a.placeOrder(t)

	rec := a.do(t, http.MethodPut, a.path("/orders/%s/status", id), map[string]any{"status": "ready"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	o := decode[servers.Order](t, a.do(t, http.MethodGet, a.path("/orders/%s", id), nil))
	assert.Equal(t, servers.OrderStatusReady, o.Status)

	rec = a.do(t, http.MethodPut, a.path("/orders/%s/status", id), map[string]any{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "not in the status enum")

	rec = a.do(t, http.MethodPut, a.path("/orders/%s/status", kernel.NewOrderedUUID()), map[string]any{"status": "served"})
	assert.Equal(t, http.StatusNoContent, rec.Code, "unknown order is a no-op")
}

func TestListOrders(t *testing.T) {
	a := newAPI(t)
	first := a.placeOrder(t)
	second := a.placeOrder(t)
	rec := a.do(t, http.MethodPost, a.path("/orders/%s/advance", first), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, a.path("/orders"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]servers.Order](t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, second, all[0].Id.String(), "newest first")

	rec = a.do(t, http.MethodGet, a.path("/orders?status=preparing&status=ready"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	filtered := decode[[]servers.Order](t, rec)
	require.Len(t, filtered, 1)
	assert.Equal(t, first, filtered[0].Id.String())

	rec = a.do(t, http.MethodGet, a.path("/orders?status=eaten"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderStats(t *testing.T) {
	a := newAPI(t)
	first := a.placeOrder(t)
	a.placeOrder(t)
	rec := a.do(t, http.MethodPost, a.path("/orders/%s/cancel", first), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, a.path("/orders/stats"), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[servers.OrderStats](t, rec)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 2, stats.TodayCount)
	assert.Equal(t, "3.50", stats.TodayRevenue, "cancelled orders earn nothing")
	assert.Equal(t, "€", stats.CurrencySymbol)
}

func TestClearOrders(t *testing.T) {
	a := newAPI(t)
	a.placeOrder(t)
	a.placeOrder(t)

	rec := a.do(t, http.MethodDelete, a.path("/orders"), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "needs confirmation")

	rec = a.do(t, http.MethodDelete, a.path("/orders?confirm=true"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decode[servers.ClearResult](t, rec).Removed)

	assert.Empty(t, decode[[]servers.Order](t, a.do(t, http.MethodGet, a.path("/orders"), nil)))
}

func TestGetOrder_OtherVenue(t *testing.T) {
	a := newAPI(t)
	id := a.placeOrder(t)

	rec := a.do(t, http.MethodGet, "/api/v1/venues/"+kernel.NewUUID().String()+"/orders/"+id, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newAPI(t)
	a.do(t, http.MethodGet, a.path("/menu"), nil)

	rec := a.do(t, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `menuorder_http_requests_total{method="GET",route="/api/v1/venues/:venueId/menu",status="200"} 1`)
}

func TestSwaggerDocs(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodGet, "/swagger/doc.json", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/venues/{venueId}/checkout")
}
