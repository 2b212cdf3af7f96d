package ports

import (
	"context"

	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/venue"
)

// VenueRepository provides read access to venue configuration and the
// upsert used by the catalog seed.
type VenueRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*venue.Venue, error)
	Save(ctx context.Context, v *venue.Venue) error
}

// ProductRepository provides the catalog products of a venue.
type ProductRepository interface {
	// Get returns errs.ObjectNotFoundError unless the product exists and
	// belongs to the venue.
	Get(ctx context.Context, venueID, id kernel.UUID) (*catalog.Product, error)
	ListByVenue(ctx context.Context, venueID kernel.UUID) ([]*catalog.Product, error)
	Save(ctx context.Context, p *catalog.Product, position int) error
}
