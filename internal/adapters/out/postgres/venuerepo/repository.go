// Package venuerepo persists venue configuration: name, table count,
// currency symbol and timezone.
package venuerepo

import (
	"context"
	"errors"
	"time"

	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/venue"
	"menuorder/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VenueDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	TableCount     int       `gorm:"not null"`
	CurrencySymbol string    `gorm:"type:varchar(8);not null"`
	Timezone       string    `gorm:"type:varchar(64);not null;default:''"`
}

func (VenueDTO) TableName() string {
	return "venues"
}

type GormVenueRepository struct {
	db *gorm.DB
}

func NewGormVenueRepository(db *gorm.DB) *GormVenueRepository {
	return &GormVenueRepository{db: db}
}

func (r *GormVenueRepository) Get(ctx context.Context, id kernel.UUID) (*venue.Venue, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VenueDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("venue", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save inserts the venue or overwrites the stored configuration.
func (r *GormVenueRepository) Save(ctx context.Context, v *venue.Venue) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := fromDomain(v)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

func fromDomain(v *venue.Venue) VenueDTO {
	timezone := ""
	if loc := v.Location(); loc != nil && loc != time.UTC {
		timezone = loc.String()
	}
	return VenueDTO{
		ID:             v.ID().Bytes(),
		Name:           v.Name(),
		TableCount:     v.TableCount(),
		CurrencySymbol: v.CurrencySymbol(),
		Timezone:       timezone,
	}
}

func toDomain(dto VenueDTO) (*venue.Venue, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return venue.NewVenue(id, dto.Name, dto.TableCount, dto.CurrencySymbol, dto.Timezone)
}
