// Package visits provides the visit reconciliation engine: the session a
// distributor runs at one client's shelf, from opening the working set with
// carried-forward expected stock, through recording counts and restocks,
// to the atomic save of the visit record and its line items.
package visits

import (
	"time"

	"consignkeep/internal/core/id"
	"consignkeep/internal/core/types"
)

// Status of a visit. Completed is the only status a save produces.
type Status string

const (
	StatusCompleted Status = "completed"
)

// Visit is one completed client visit. Immutable after creation.
type Visit struct {
	ID       id.ID  `db:"id" json:"id"`
	ClientID id.ID  `db:"client_id" json:"clientId"`
	Notes    string `db:"notes" json:"notes,omitempty"`

	// TotalDue is the sum over line items of sold_qty * price.
	TotalDue types.Money `db:"total_due" json:"totalDue"`

	Status    Status    `db:"status" json:"status"`
	VisitDate time.Time `db:"visit_date" json:"visitDate"`
}

// VisitItem is one product line of a visit. Written once as part of the
// visit save, never updated: it is the historical audit record the next
// visit's expected baseline is derived from.
type VisitItem struct {
	ID        id.ID `db:"id" json:"id"`
	VisitID   id.ID `db:"visit_id" json:"visitId"`
	ProductID id.ID `db:"product_id" json:"productId"`

	// ExpectedQty is the baseline the session opened with.
	ExpectedQty int `db:"expected_qty" json:"expectedQty"`

	// ActualQty is the resolved count (expected when left blank).
	ActualQty int `db:"actual_qty" json:"actualQty"`

	// RestockQty is the signed delivery delta.
	RestockQty int `db:"restock_qty" json:"restockQty"`

	// SoldQty is max(0, expected-actual); never negative.
	SoldQty int `db:"sold_qty" json:"soldQty"`
}

// NextBaseline is the expected quantity this line carries to the next visit.
func (vi VisitItem) NextBaseline() int {
	return vi.ActualQty + vi.RestockQty
}
