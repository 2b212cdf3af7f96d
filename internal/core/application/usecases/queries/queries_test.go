package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	postgres_adapter "menuorder/internal/adapters/out/postgres"
	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/core/domain/model/venue"
	"menuorder/internal/core/ports"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture is a SQLite order database shared by the query handler tests.
type fixture struct {
	db      *gorm.DB
	factory ports.UnitOfWorkFactory
	venue   *venue.Venue
}

func newFixture(t *testing.T, timezone string) fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", kernel.NewUUID())
	db, err := postgres_adapter.Open(postgres_adapter.DriverSQLite, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})

	v, err := venue.NewVenue(kernel.NewUUID(), "Bistro", 10, "€", timezone)
	require.NoError(t, err)
	factory := postgres_adapter.NewGormUnitOfWorkFactory(db, nil, nil)
	require.NoError(t, factory.Create().VenueRepository().Save(context.Background(), v))

	return fixture{db: db, factory: factory, venue: v}
}

func (f fixture) addOrder(
	t *testing.T,
	venueID kernel.UUID,
	status order.Status,
	createdAt time.Time,
	items ...order.Item,
) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []order.Item{newItem(t, "Soup", "6.50", 1)}
	}
	o, err := order.RestoreOrder(kernel.NewOrderedUUID(), venueID, "5", "", items, status, createdAt)
	require.NoError(t, err)
	require.NoError(t, f.factory.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func newItem(t *testing.T, name, price string, qty int, variations ...catalog.SelectedVariation) order.Item {
	t.Helper()
	productID := kernel.NewUUID()
	item, err := order.NewItem(productID, productID.String(), name, kernel.MustMoney(price), qty, "", variations)
	require.NoError(t, err)
	return item
}
