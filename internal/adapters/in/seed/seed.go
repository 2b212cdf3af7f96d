// Package seed loads venues and their products from a YAML file into the
// catalog. Seeding is an upsert keyed by id, so it can run on every start.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"menuorder/internal/core/domain/model/catalog"
	"menuorder/internal/core/domain/model/kernel"
	"menuorder/internal/core/domain/model/venue"
	"menuorder/internal/core/ports"

	"gopkg.in/yaml.v3"
)

// File is the seed document.
//
//	venues:
//	  - id: 9b2f0c1e-5d8a-4c57-9a43-2f0d7c1e8b10
//	    name: Bistro
//	    tables: 12
//	    currency: "€"
//	    timezone: Europe/Rome
//	    products:
//	      - id: 4f1c...
//	        name: Latte
//	        price: "3.50"
//	        groups:
//	          - id: 7a9e...
//	            name: Size
//	            options:
//	              - {id: 1d2c..., name: Large, price: "1.50"}
type File struct {
	Venues []Venue `yaml:"venues"`
}

type Venue struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Tables   int       `yaml:"tables"`
	Currency string    `yaml:"currency"`
	Timezone string    `yaml:"timezone"`
	Products []Product `yaml:"products"`
}

type Product struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Price  string  `yaml:"price"`
	Image  string  `yaml:"image"`
	Groups []Group `yaml:"groups"`
}

type Group struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Options []Option `yaml:"options"`
}

type Option struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// Decode parses a seed document. Unknown keys are rejected.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode seed: %w", err)
	}
	return f, nil
}

// LoadFile reads and parses the seed file at path.
func LoadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fh.Close()
	return Decode(fh)
}

// Apply builds every venue and product first and writes them in one
// transaction, so a broken entry leaves the catalog untouched. It returns
// the number of products written.
func Apply(ctx context.Context, uowFactory ports.UnitOfWorkFactory, f File) (int, error) {
	type entry struct {
		venue    *venue.Venue
		products []*catalog.Product
	}

	entries := make([]entry, 0, len(f.Venues))
	for i, raw := range f.Venues {
		v, products, err := raw.build()
		if err != nil {
			return 0, fmt.Errorf("venue #%d %q: %w", i+1, raw.Name, err)
		}
		entries = append(entries, entry{venue: v, products: products})
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	written := 0
	for _, e := range entries {
		if err := uow.VenueRepository().Save(ctx, e.venue); err != nil {
			return 0, err
		}
		for position, p := range e.products {
			if err := uow.ProductRepository().Save(ctx, p, position); err != nil {
				return 0, err
			}
			written++
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}
	return written, nil
}

func (v Venue) build() (*venue.Venue, []*catalog.Product, error) {
	id, err := kernel.UUIDFromString(v.ID)
	if err != nil {
		return nil, nil, err
	}

	built, err := venue.NewVenue(id, v.Name, v.Tables, v.Currency, v.Timezone)
	if err != nil {
		return nil, nil, err
	}

	products := make([]*catalog.Product, 0, len(v.Products))
	for _, raw := range v.Products {
		p, productErr := raw.build(id)
		if productErr != nil {
			return nil, nil, fmt.Errorf("product %q: %w", raw.Name, productErr)
		}
		products = append(products, p)
	}

	return built, products, nil
}

func (p Product) build(venueID kernel.UUID) (*catalog.Product, error) {
	id, err := kernel.UUIDFromString(p.ID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.MoneyFromString(p.Price)
	if err != nil {
		return nil, err
	}

	groups := make([]catalog.VariationGroup, 0, len(p.Groups))
	for _, g := range p.Groups {
		group, groupErr := g.build()
		if groupErr != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, groupErr)
		}
		groups = append(groups, group)
	}

	return catalog.NewProduct(id, venueID, p.Name, price, p.Image, groups...)
}

func (g Group) build() (catalog.VariationGroup, error) {
	id, err := kernel.UUIDFromString(g.ID)
	if err != nil {
		return catalog.VariationGroup{}, err
	}

	options := make([]catalog.VariationOption, 0, len(g.Options))
	for _, o := range g.Options {
		optionID, idErr := kernel.UUIDFromString(o.ID)
		if idErr != nil {
			return catalog.VariationGroup{}, idErr
		}
		var adjustment kernel.Money
		if o.Price != "" {
			var priceErr error
			if adjustment, priceErr = kernel.MoneyFromString(o.Price); priceErr != nil {
				return catalog.VariationGroup{}, priceErr
			}
		}
		option, optionErr := catalog.NewVariationOption(optionID, o.Name, adjustment)
		if optionErr != nil {
			return catalog.VariationGroup{}, optionErr
		}
		options = append(options, option)
	}

	return catalog.NewVariationGroup(id, g.Name, options...)
}
