package client

import (
	"context"
	"time"

	"consignkeep/internal/core/id"
)

// SortOrder for directory listings.
type SortOrder string

const (
	// SortNewestVisit orders by last_visited descending; never-visited
	// clients sort to the end.
	SortNewestVisit SortOrder = "newest_visit"

	// SortOldestVisit orders by last_visited ascending; never-visited
	// clients still sort to the end.
	SortOldestVisit SortOrder = "oldest_visit"
)

// ListFilter narrows a directory listing.
type ListFilter struct {
	// Search matches name or address, case-insensitive substring.
	Search string

	// Address filters by exact address match.
	Address string

	Order SortOrder

	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Order: SortNewestVisit,
		Limit: 50,
	}
}

// Repository defines persistence for the Client catalog.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, clientID id.ID) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Archive(ctx context.Context, clientID id.ID) error
	List(ctx context.Context, filter ListFilter) ([]*Client, error)

	// Addresses returns the distinct non-empty addresses of active clients,
	// sorted, for the exact-address filter UI.
	Addresses(ctx context.Context) ([]string, error)

	// TouchLastVisited updates last_visited; called only from a completed
	// visit save, inside that save's transaction.
	TouchLastVisited(ctx context.Context, clientID id.ID, visitedAt time.Time) error
}
