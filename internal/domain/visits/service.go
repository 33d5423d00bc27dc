package visits

import (
	"context"
	"fmt"
	"time"

	"consignkeep/internal/core/id"
	"consignkeep/internal/core/tx"
	"consignkeep/internal/domain/catalogs/client"
	"consignkeep/internal/domain/catalogs/product"
	"consignkeep/internal/domain/invoice"
	"consignkeep/pkg/logger"
)

// Service owns visit sessions from open to save.
type Service struct {
	repo      Repository
	clients   client.Repository
	products  product.Repository
	txManager tx.Manager

	now func() time.Time
}

// NewService creates a new visit service.
func NewService(
	repo Repository,
	clients client.Repository,
	products product.Repository,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		clients:   clients,
		products:  products,
		txManager: txManager,
		now:       time.Now,
	}
}

// Open starts a visit session for a client: loads the client, the catalog
// in name order, and each product's expected baseline from the client's
// most recent prior visit. A fresh client-product pair opens at zero.
//
// A missing client is reported as NotFound, the terminal state for the
// caller's view.
func (s *Service) Open(ctx context.Context, clientID id.ID) (*Session, error) {
	cl, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.products.List(ctx, product.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	baseline, err := s.repo.BaselineByProduct(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}

	lines := make([]Line, 0, len(catalog))
	for _, p := range catalog {
		lines = append(lines, Line{Product: p, Expected: baseline[p.ID]})
	}

	logger.Debug(ctx, "visit session opened",
		"client_id", clientID, "products", len(lines))
	return NewSession(cl, lines), nil
}

// Save persists the session as one completed visit: the visit header, the
// sparse line items, and the client's last_visited stamp, all in a single
// transaction. On success the session's baselines roll forward and the
// inputs reset; on failure the inputs are retained so the operator can
// retry without re-entering counts.
//
// A session can be saved repeatedly; each save is a new historical visit
// reconciled against the refreshed baselines.
func (s *Service) Save(ctx context.Context, sess *Session, notes string) (*Visit, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.notes = notes
	now := s.now().UTC()
	items := sess.materializeLocked()

	visit := &Visit{
		ID:        id.New(),
		ClientID:  sess.client.ID,
		Notes:     notes,
		TotalDue:  sess.totalDueLocked(),
		Status:    StatusCompleted,
		VisitDate: now,
	}
	for i := range items {
		items[i].VisitID = visit.ID
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateVisit(ctx, visit); err != nil {
			return fmt.Errorf("create visit: %w", err)
		}
		if len(items) > 0 {
			if err := s.repo.CreateItems(ctx, items); err != nil {
				return fmt.Errorf("create visit items: %w", err)
			}
		}
		if err := s.clients.TouchLastVisited(ctx, visit.ClientID, now); err != nil {
			return fmt.Errorf("touch last visited: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "visit save failed",
			"client_id", visit.ClientID, "error", err)
		return nil, err
	}

	sess.applySavedLocked(items)
	sess.client.LastVisited = &now

	logger.Info(ctx, "visit saved",
		"visit_id", visit.ID,
		"client_id", visit.ClientID,
		"items", len(items),
		"total_due", visit.TotalDue)
	return visit, nil
}

// SaveWithInvoice renders the invoice from the pre-save state first, then
// saves. The ordering matters: the save resets the inputs the invoice is
// built from.
func (s *Service) SaveWithInvoice(ctx context.Context, sess *Session, notes string) (*Visit, *invoice.Document, error) {
	sess.mu.Lock()
	doc := invoice.Build(
		sess.client.Name,
		toInvoiceLines(sess.reviewItemsLocked()),
		sess.totalDueLocked(),
		notes,
		s.now(),
	)
	sess.mu.Unlock()

	visit, err := s.Save(ctx, sess, notes)
	if err != nil {
		return nil, nil, err
	}
	return visit, doc, nil
}

// History returns the client's most recent visits, newest first.
func (s *Service) History(ctx context.Context, clientID id.ID, limit int) ([]*Visit, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.History(ctx, clientID, limit)
}

// Items returns a stored visit's line items.
func (s *Service) Items(ctx context.Context, visitID id.ID) ([]VisitItem, error) {
	return s.repo.ItemsByVisit(ctx, visitID)
}

func toInvoiceLines(items []ReviewItem) []invoice.Line {
	lines := make([]invoice.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, invoice.Line{
			Name:  it.Name,
			Qty:   it.Qty,
			Price: it.Price,
			Total: it.Total,
		})
	}
	return lines
}
