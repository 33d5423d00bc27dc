package client

import (
	"context"
	"time"

	"consignkeep/internal/core/id"
	"consignkeep/pkg/logger"
)

// Service provides business logic for the Client catalog and the
// directory read side that feeds visit sessions.
type Service struct {
	repo Repository
}

// NewService creates a new Client service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new client.
func (s *Service) Create(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	logger.Info(ctx, "client created", "id", c.ID, "name", c.Name)
	return nil
}

// GetByID retrieves a client.
func (s *Service) GetByID(ctx context.Context, clientID id.ID) (*Client, error) {
	return s.repo.GetByID(ctx, clientID)
}

// Update modifies an existing client. last_visited is never writable here;
// it is owned by the visit save path.
func (s *Service) Update(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

// Archive soft-removes a client from the directory.
func (s *Service) Archive(ctx context.Context, clientID id.ID) error {
	return s.repo.Archive(ctx, clientID)
}

// DirectoryEntry is one row of the client directory listing.
type DirectoryEntry struct {
	*Client

	// Recency is the bucketed "time since last visit" display label.
	Recency string `json:"recency"`
}

// List returns the filtered, sorted directory with recency labels derived
// at read time. Pure presentation: no side effects.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]DirectoryEntry, error) {
	clients, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]DirectoryEntry, 0, len(clients))
	for _, c := range clients {
		entries = append(entries, DirectoryEntry{
			Client:  c,
			Recency: c.RecencyLabel(now),
		})
	}
	return entries, nil
}

// Addresses returns the distinct address list for the exact-address filter.
func (s *Service) Addresses(ctx context.Context) ([]string, error) {
	return s.repo.Addresses(ctx)
}
