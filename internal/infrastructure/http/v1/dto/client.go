package dto

import (
	"time"

	"consignkeep/internal/domain/catalogs/client"
)

// --- Request DTOs ---

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	Name     string  `json:"name" binding:"required"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	MapsLink *string `json:"mapsLink"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateClientRequest) ToEntity() *client.Client {
	c := client.New(r.Name, r.Address, r.Phone)
	c.MapsLink = r.MapsLink
	return c
}

// UpdateClientRequest is the request body for updating a client.
// LastVisited is deliberately absent: only a completed visit moves it.
type UpdateClientRequest struct {
	Name     string  `json:"name" binding:"required"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	MapsLink *string `json:"mapsLink"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateClientRequest) ApplyTo(c *client.Client) {
	c.Name = r.Name
	c.Address = r.Address
	c.Phone = r.Phone
	c.MapsLink = r.MapsLink
}

// ClientListQuery carries directory filter query parameters.
type ClientListQuery struct {
	Search  string `form:"search"`
	Address string `form:"address"`
	OrderBy string `form:"orderBy"`
	Limit   int    `form:"limit"`
	Offset  int    `form:"offset"`
}

// ToFilter converts query parameters to a domain filter.
func (q *ClientListQuery) ToFilter() client.ListFilter {
	filter := client.DefaultListFilter()
	filter.Search = q.Search
	filter.Address = q.Address
	if q.OrderBy == string(client.SortOldestVisit) {
		filter.Order = client.SortOldestVisit
	}
	if q.Limit > 0 {
		filter.Limit = q.Limit
	}
	if q.Offset > 0 {
		filter.Offset = q.Offset
	}
	return filter
}

// --- Response DTOs ---

// ClientResponse is the response body for a client.
type ClientResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone,omitempty"`
	MapsLink    *string    `json:"mapsLink,omitempty"`
	LastVisited *time.Time `json:"lastVisited,omitempty"`
	Recency     string     `json:"recency,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	Status      string     `json:"status"`
}

// FromClient creates response DTO from domain entity.
func FromClient(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Address:     c.Address,
		Phone:       c.Phone,
		MapsLink:    c.MapsLink,
		LastVisited: c.LastVisited,
		CreatedAt:   c.CreatedAt,
		Status:      string(c.Status),
	}
}

// FromDirectoryEntry creates response DTO including the recency label.
func FromDirectoryEntry(e client.DirectoryEntry) ClientResponse {
	resp := FromClient(e.Client)
	resp.Recency = e.Recency
	return resp
}
