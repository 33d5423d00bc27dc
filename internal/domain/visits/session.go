package visits

import (
	"sync"

	"github.com/shopspring/decimal"

	"consignkeep/internal/core/id"
	"consignkeep/internal/core/types"
	"consignkeep/internal/domain/catalogs/client"
	"consignkeep/internal/domain/catalogs/product"
	"consignkeep/internal/domain/ledger"
)

// Line is one product of the session working set: the catalog entry plus
// the expected shelf quantity carried from the client's last visit.
type Line struct {
	Product  *product.Product `json:"product"`
	Expected int              `json:"expected"`
}

// ReviewItem is one display row of the visit summary: a priced "(Sold)" row
// or a zero-priced "(Restock)" row. Zero-quantity rows are never produced.
type ReviewItem struct {
	Name  string      `json:"name"`
	Qty   int         `json:"qty"`
	Price types.Money `json:"price"`
	Total types.Money `json:"total"`
}

// Session is the mutable working set of one in-progress visit for one
// client. Inputs are recorded raw and interpreted lazily: totals and review
// rows are pure functions of the current input state, recomputed on demand.
//
// A session serializes its own operations; it is not meant to be shared
// across clients (each client visit owns its session).
type Session struct {
	mu sync.Mutex

	client   *client.Client
	lines    []Line // catalog order, stable (by product name)
	counts   map[id.ID]string
	restocks map[id.ID]string
	notes    string
}

// NewSession builds a session from a loaded client and working set.
func NewSession(c *client.Client, lines []Line) *Session {
	return &Session{
		client:   c,
		lines:    lines,
		counts:   make(map[id.ID]string),
		restocks: make(map[id.ID]string),
	}
}

// Client returns the session's client.
func (s *Session) Client() *client.Client {
	return s.client
}

// Lines returns a snapshot of the working set.
func (s *Session) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// SetActual records the raw counted quantity for a product. No validation
// happens here: malformed input degrades to "unchanged" at read time.
func (s *Session) SetActual(productID id.ID, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[productID] = raw
}

// SetRestock records the raw restock delta for a product.
func (s *Session) SetRestock(productID id.ID, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restocks[productID] = raw
}

// SetNotes records the free-text visit notes.
func (s *Session) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
}

// Notes returns the current notes.
func (s *Session) Notes() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes
}

// TotalDue sums sold_qty * price over the working set. Always consistent
// with the current input state.
func (s *Session) TotalDue() types.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalDueLocked()
}

func (s *Session) totalDueLocked() types.Money {
	total := decimal.Zero
	for _, line := range s.lines {
		sold := ledger.SoldQty(line.Expected, s.counts[line.Product.ID])
		total = total.Add(ledger.LineTotal(sold, line.Product.Price))
	}
	return total
}

// ReviewItems produces the synthetic two-row-per-product summary in catalog
// order, skipping zero-quantity rows entirely.
func (s *Session) ReviewItems() []ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewItemsLocked()
}

func (s *Session) reviewItemsLocked() []ReviewItem {
	items := make([]ReviewItem, 0, len(s.lines))
	for _, line := range s.lines {
		p := line.Product

		if sold := ledger.SoldQty(line.Expected, s.counts[p.ID]); sold > 0 {
			items = append(items, ReviewItem{
				Name:  p.Name + " (Sold)",
				Qty:   sold,
				Price: p.Price,
				Total: ledger.LineTotal(sold, p.Price),
			})
		}

		if restock := ledger.RestockQty(s.restocks[p.ID]); restock != 0 {
			items = append(items, ReviewItem{
				Name:  p.Name + " (Restock)",
				Qty:   restock,
				Price: decimal.Zero,
				Total: decimal.Zero,
			})
		}
	}
	return items
}

// materializeLocked derives the persistable visit items from the current
// input state. Sparse: a product with no entered count, no restock and no
// derived sale produces no row ("untouched this visit", not "zero").
func (s *Session) materializeLocked() []VisitItem {
	items := make([]VisitItem, 0, len(s.lines))
	for _, line := range s.lines {
		pid := line.Product.ID
		rawCount := s.counts[pid]

		_, counted := ledger.ParseCount(rawCount)
		restock := ledger.RestockQty(s.restocks[pid])
		sold := ledger.SoldQty(line.Expected, rawCount)

		if !counted && restock == 0 && sold == 0 {
			continue
		}

		items = append(items, VisitItem{
			ID:          id.New(),
			ProductID:   pid,
			ExpectedQty: line.Expected,
			ActualQty:   ledger.ResolveActual(line.Expected, rawCount),
			RestockQty:  restock,
			SoldQty:     sold,
		})
	}
	return items
}

// applySavedLocked rolls the working set forward after a successful save:
// touched lines get their next baseline as the new expected quantity, and
// all inputs reset. A second save on the same session starts clean against
// the refreshed baselines.
func (s *Session) applySavedLocked(items []VisitItem) {
	next := make(map[id.ID]int, len(items))
	for _, it := range items {
		next[it.ProductID] = it.NextBaseline()
	}
	for i := range s.lines {
		if baseline, ok := next[s.lines[i].Product.ID]; ok {
			s.lines[i].Expected = baseline
		}
	}
	s.counts = make(map[id.ID]string)
	s.restocks = make(map[id.ID]string)
	s.notes = ""
}
