// Package postgres provides the GORM-based implementation of the Unit of Work pattern
// and the schema of the order database. The same code runs on PostgreSQL and,
// for local single-node setups and tests, on SQLite.
//
// Key Features:
//   - Transaction management across the order, venue and product repositories
//   - Order change tracking, published only after a successful commit
//   - Proper isolation between concurrent operations
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
package postgres

import (
	"context"
	"log/slog"
	"time"

	"menuorder/internal/adapters/out/postgres/orderrepo"
	"menuorder/internal/adapters/out/postgres/productrepo"
	"menuorder/internal/adapters/out/postgres/venuerepo"
	"menuorder/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.OrderChangePublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// A nil publisher disables change notifications.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, hub, logger)
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.OrderChangePublisher,
	logger *slog.Logger,
) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
		now:       f.now,
	}
}

// GormUnitOfWork coordinates database transactions and tracks order changes
// for business operations. Changes tracked while a transaction is open are
// published after Commit succeeds and dropped on Rollback.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.OrderChangePublisher
	logger    *slog.Logger
	now       func() time.Time
	changes   []ports.OrderChange
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction and then
// publishes the tracked order changes. A failed publish is logged; it never
// turns a successful commit into an error.
//
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	changes := uow.changes
	uow.changes = nil
	if err != nil {
		return err
	}

	uow.publish(context.WithoutCancel(ctx), changes)
	return nil
}

// Rollback discards all changes made within the current transaction.
//
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.changes = nil
	return err
}

// OrderRepository provides access to order persistence operations within the unit of work.
// Repository operations will execute within the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// VenueRepository provides access to venue configuration within the unit of work.
func (uow *GormUnitOfWork) VenueRepository() ports.VenueRepository {
	return venuerepo.NewGormVenueRepository(uow.conn())
}

// ProductRepository provides access to the catalog within the unit of work.
func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

// TrackChange registers an order change made within this unit of work.
// Repositories call it after each successful write. Outside a transaction
// the write is already durable, so the change is published immediately.
func (uow *GormUnitOfWork) TrackChange(change ports.OrderChange) {
	if change.OccurredAt.IsZero() {
		change.OccurredAt = uow.now().UTC()
	}
	if uow.tx == nil {
		uow.publish(context.Background(), []ports.OrderChange{change})
		return
	}
	uow.changes = append(uow.changes, change)
}

// TrackedChanges returns the changes waiting for the commit.
func (uow *GormUnitOfWork) TrackedChanges() []ports.OrderChange {
	return append([]ports.OrderChange(nil), uow.changes...)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publish(ctx context.Context, changes []ports.OrderChange) {
	if uow.publisher == nil || len(changes) == 0 {
		return
	}
	if err := uow.publisher.Publish(ctx, changes...); err != nil {
		uow.logger.Warn("order change publish failed",
			slog.Int("changes", len(changes)),
			slog.String("error", err.Error()),
		)
	}
}
