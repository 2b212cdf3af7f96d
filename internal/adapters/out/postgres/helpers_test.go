package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	postgres_adapter "menuorder/internal/adapters/out/postgres"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/core/ports"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testCreatedAt = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

// recordingPublisher keeps every published change.
type recordingPublisher struct {
	mu      sync.Mutex
	changes []ports.OrderChange
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, changes ...ports.OrderChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, changes...)
	return p.err
}

func (p *recordingPublisher) Changes() []ports.OrderChange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.OrderChange(nil), p.changes...)
}

var errPublish = errors.New("broker unavailable")

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", kernel.NewUUID())
	db, err := postgres_adapter.Open(postgres_adapter.DriverSQLite, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestOrder(t require.TestingT, venueID kernel.UUID, status order.Status) *order.Order {
	productID := kernel.NewUUID()
	item, err := order.NewItem(productID, productID.String(), "Pasta", kernel.MustMoney("12.99"), 2, "pasta.png", nil)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewOrderedUUID(), venueID, "7", "", []order.Item{item}, status, testCreatedAt)
	require.NoError(t, err)
	return o
}
