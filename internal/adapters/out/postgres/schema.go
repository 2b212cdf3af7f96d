package postgres

import (
	"menuorder/internal/adapters/out/postgres/orderrepo"
	"menuorder/internal/adapters/out/postgres/productrepo"
	"menuorder/internal/adapters/out/postgres/venuerepo"

	"gorm.io/gorm"
)

// Models lists every table of the order database.
func Models() []any {
	return []any{
		&venuerepo.VenueDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
