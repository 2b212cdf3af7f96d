package postgres_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	postgres_adapter "menuorder/internal/adapters/out/postgres"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/core/ports"
	"menuorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_PublishesAfterCommit(t *testing.T) {
	ctx := context.Background()
	publisher := &recordingPublisher{}
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), publisher, nil)
	venueID := kernel.NewUUID()
	o := createTestOrder(t, venueID, order.Pending)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))

	require.True(t, o.Advance())
	require.NoError(t, uow.OrderRepository().Update(ctx, o))
	assert.Empty(t, publisher.Changes(), "nothing is published before commit")

	require.NoError(t, uow.Commit(ctx))

	changes := publisher.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, ports.OrderCreated, changes[0].Kind)
	assert.Equal(t, ports.OrderStatusChanged, changes[1].Kind)
	assert.Equal(t, order.Preparing, changes[1].Status)
	assert.True(t, changes[1].VenueID.IsEqual(venueID))
	assert.False(t, changes[1].OccurredAt.IsZero())
}

func TestUnitOfWork_RollbackDropsChanges(t *testing.T) {
	ctx := context.Background()
	publisher := &recordingPublisher{}
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), publisher, nil)
	o := createTestOrder(t, kernel.NewUUID(), order.Pending)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Rollback(ctx))

	assert.Empty(t, publisher.Changes())
	_, err := factory.Create().OrderRepository().Get(ctx, o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Commit(ctx))
	assert.Empty(t, publisher.Changes(), "rolled back changes never resurface")
}

func TestUnitOfWork_PublishFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	publisher := &recordingPublisher{err: errPublish}
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), publisher, logger)
	o := createTestOrder(t, kernel.NewUUID(), order.Pending)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))

	require.NoError(t, uow.Commit(ctx))

	stored, err := factory.Create().OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	assert.True(t, stored.IsEqual(o))
	assert.Contains(t, logs.String(), "order change publish failed")
	assert.Contains(t, logs.String(), errPublish.Error())
}

func TestUnitOfWork_PublishesImmediatelyWithoutTransaction(t *testing.T) {
	ctx := context.Background()
	publisher := &recordingPublisher{}
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), publisher, nil)
	o := createTestOrder(t, kernel.NewUUID(), order.Served)

	repo := factory.Create().OrderRepository()
	require.NoError(t, repo.Add(ctx, o))
	require.NoError(t, repo.Delete(ctx, o.ID()))

	changes := publisher.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, ports.OrderRemoved, changes[1].Kind)
	assert.True(t, changes[1].OrderID.IsEqual(o.ID()))
}

func TestUnitOfWork_NilPublisher(t *testing.T) {
	ctx := context.Background()
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), nil, nil)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, createTestOrder(t, kernel.NewUUID(), order.Pending)))

	require.NoError(t, uow.Commit(ctx))
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := postgres_adapter.Open("oracle", "", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}
