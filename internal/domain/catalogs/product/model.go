// Package product provides the shared product/inventory catalog.
// The same record doubles as the warehouse stock entry and as the catalog
// line a visit session audits; the reconciliation engine reads only name
// and price from it.
package product

import (
	"context"
	"time"

	"consignkeep/internal/core/apperror"
	"consignkeep/internal/core/id"
	"consignkeep/internal/core/types"
)

// Status of a product record.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Product is one catalog entry.
type Product struct {
	ID       id.ID  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category,omitempty"`

	// Price per unit, 3-decimal subunit currency.
	Price types.Money `db:"price" json:"price"`

	// Stock is the warehouse (van) quantity, not per-client shelf stock.
	Stock int `db:"stock" json:"stock"`

	// MinLevel is the low-stock warning threshold for the warehouse view.
	MinLevel int `db:"min_level" json:"minLevel"`

	// Unit is the display unit label ("tin", "box", ...).
	Unit string `db:"unit" json:"unit,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	Status    Status    `db:"status" json:"status"`
}

// New creates a new active Product.
func New(name, category string, price types.Money, unit string) *Product {
	return &Product{
		ID:        id.New(),
		Name:      name,
		Category:  category,
		Price:     price,
		Unit:      unit,
		CreatedAt: time.Now().UTC(),
		Status:    StatusActive,
	}
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}
	return nil
}

// IsLowStock reports whether warehouse stock fell to the warning threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinLevel
}
