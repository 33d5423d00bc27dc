package visits

import (
	"context"

	"consignkeep/internal/core/id"
)

// Repository defines persistence for visits and their line items.
type Repository interface {
	// CreateVisit inserts the visit header row.
	CreateVisit(ctx context.Context, v *Visit) error

	// CreateItems batch-inserts the visit's line items.
	CreateItems(ctx context.Context, items []VisitItem) error

	// BaselineByProduct returns, per product, the expected baseline derived
	// from the client's most recent visit item for that product
	// (actual_qty + restock_qty). Products with no prior visit are absent
	// from the map; their baseline is zero.
	BaselineByProduct(ctx context.Context, clientID id.ID) (map[id.ID]int, error)

	// History returns the client's most recent visits, newest first.
	History(ctx context.Context, clientID id.ID, limit int) ([]*Visit, error)

	// ItemsByVisit returns a stored visit's line items.
	ItemsByVisit(ctx context.Context, visitID id.ID) ([]VisitItem, error)
}
