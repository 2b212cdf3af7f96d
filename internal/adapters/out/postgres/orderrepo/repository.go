package orderrepo

import (
	"context"
	"errors"
	"time"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/order"
	"menuorder/internal/core/ports"
	"menuorder/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

// changeTracker collects the order changes of a unit of work.
type changeTracker interface {
	TrackChange(change ports.OrderChange)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker changeTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(ports.OrderChange{
		Kind:    ports.OrderCreated,
		VenueID: aggregate.VenueID(),
		OrderID: aggregate.ID(),
		Status:  aggregate.Status(),
	})
	return nil
}

// Update writes the status of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackChange(ports.OrderChange{
		Kind:    ports.OrderStatusChanged,
		VenueID: aggregate.VenueID(),
		OrderID: aggregate.ID(),
		Status:  aggregate.Status(),
	})
	return nil
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the order and its items. Unknown ids are a no-op.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Select("id", "venue_id").First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = r.deleteByIDs(ctx, []uuid.UUID{dto.ID}); err != nil {
		return err
	}

	r.trackRemoved(dto)
	return nil
}

// DeleteAllByVenue removes every order of the venue.
func (r *GormOrderRepository) DeleteAllByVenue(ctx context.Context, venueID kernel.UUID) (int64, error) {
	if err := venueID.Validate(); err != nil {
		return 0, err
	}

	db := r.db.WithContext(ctx)
	sub := db.Model(&OrderDTO{}).Select("id").Where("venue_id = ?", venueID.Bytes())
	if err := db.Where("order_id IN (?)", sub).Delete(&OrderItemDTO{}).Error; err != nil {
		return 0, err
	}

	result := db.Where("venue_id = ?", venueID.Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		r.tracker.TrackChange(ports.OrderChange{Kind: ports.OrdersCleared, VenueID: venueID})
	}
	return result.RowsAffected, nil
}

// DeleteTerminalBefore removes served and cancelled orders created before
// the cutoff.
func (r *GormOrderRepository) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Select("id", "venue_id").
		Where("status IN ? AND created_at < ?", []int{int(order.Served), int(order.Cancelled)}, cutoff.UTC()).
		Find(&dtos).Error
	if err != nil {
		return 0, err
	}
	if len(dtos) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}
	if err = r.deleteByIDs(ctx, ids); err != nil {
		return 0, err
	}

	for _, dto := range dtos {
		r.trackRemoved(dto)
	}
	return int64(len(dtos)), nil
}

// deleteByIDs removes items first so it works without foreign key support.
func (r *GormOrderRepository) deleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id IN ?", ids).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", ids).Delete(&OrderDTO{}).Error
}

func (r *GormOrderRepository) trackRemoved(dto OrderDTO) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	venueID, venueErr := kernel.UUIDFromBytes(dto.VenueID[:])
	if idErr != nil || venueErr != nil {
		return
	}
	r.tracker.TrackChange(ports.OrderChange{
		Kind:    ports.OrderRemoved,
		VenueID: venueID,
		OrderID: id,
	})
}
