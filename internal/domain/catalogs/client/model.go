// Package client provides the Client catalog: the cafés and shops the
// distributor delivers consignment stock to.
package client

import (
	"context"
	"fmt"
	"time"

	"consignkeep/internal/core/apperror"
	"consignkeep/internal/core/id"
)

// Status of a client record.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Client represents one consignment customer.
type Client struct {
	ID      id.ID  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone,omitempty"`

	// MapsLink is an optional external map URL for the shop location.
	MapsLink *string `db:"maps_link" json:"mapsLink,omitempty"`

	// LastVisited is set exclusively by a completed visit save.
	LastVisited *time.Time `db:"last_visited" json:"lastVisited,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	Status    Status    `db:"status" json:"status"`
}

// New creates a new active Client.
func New(name, address, phone string) *Client {
	return &Client{
		ID:        id.New(),
		Name:      name,
		Address:   address,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
		Status:    StatusActive,
	}
}

// Validate checks client invariants.
func (c *Client) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// RecencyLabel buckets the time since the last visit for list display.
// The difference is in calendar days, not exact 24-hour periods: a visit
// at 23:00 yesterday is "yesterday" even nine hours later.
func (c *Client) RecencyLabel(now time.Time) string {
	return recencyLabel(c.LastVisited, now)
}

func recencyLabel(lastVisited *time.Time, now time.Time) string {
	if lastVisited == nil {
		return "never"
	}

	visitDay := truncateToDay(lastVisited.Local())
	today := truncateToDay(now.Local())
	days := int(today.Sub(visitDay).Hours() / 24)

	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	default:
		return fmt.Sprintf("%d months ago", days/30)
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
