package productrepo

import (
	"context"
	"errors"

	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Get returns the product only if it belongs to the venue.
func (r *GormProductRepository) Get(ctx context.Context, venueID, id kernel.UUID) (*catalog.Product, error) {
	if err := errors.Join(venueID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto ProductDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND venue_id = ?", id.Bytes(), venueID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByVenue returns the venue's products in menu order.
func (r *GormProductRepository) ListByVenue(ctx context.Context, venueID kernel.UUID) ([]*catalog.Product, error) {
	if err := venueID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ProductDTO
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID.Bytes()).
		Order("position, name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		products = append(products, p)
	}
	return products, nil
}

// Save inserts or overwrites the product at the given menu position.
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product, position int) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p, position)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
