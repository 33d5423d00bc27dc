package product

import (
	"context"

	"consignkeep/internal/core/id"
)

// ListFilter narrows a catalog listing.
type ListFilter struct {
	// Search matches name or category, case-insensitive substring.
	Search string

	// Category filters by exact category.
	Category string

	// LowStockOnly keeps only products at or below their threshold.
	LowStockOnly bool

	Limit  int
	Offset int
}

// Repository defines persistence for the product catalog.
// Listings are always ordered by name (stable catalog order).
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	Update(ctx context.Context, p *Product) error

	// Delete removes the product. Historical visit line items keep the id;
	// dangling references are a known gap, kept deliberately.
	Delete(ctx context.Context, productID id.ID) error

	List(ctx context.Context, filter ListFilter) ([]*Product, error)

	// AdjustStock applies a signed delta to the warehouse stock level.
	AdjustStock(ctx context.Context, productID id.ID, delta int) error
}
