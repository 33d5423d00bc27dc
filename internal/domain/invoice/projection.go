// Package invoice projects a reconciled visit into a priced, human-readable
// document. Pure mapping: given identical inputs it produces identical
// content, except the time-derived invoice number.
package invoice

import (
	"context"
	"fmt"
	"time"

	"consignkeep/internal/core/types"
)

// Line is one display row of the invoice.
type Line struct {
	Name  string      `json:"name"`
	Qty   int         `json:"qty"`
	Price types.Money `json:"price"`
	Total types.Money `json:"total"`
}

// Document is the ephemeral invoice projection. It is never persisted;
// it is built fresh from the in-memory visit state at invoice time.
type Document struct {
	ClientName string      `json:"clientName"`
	Date       string      `json:"date"`
	Number     string      `json:"invoiceNumber"`
	Items      []Line      `json:"items"`
	TotalDue   types.Money `json:"totalDue"`
	Notes      string      `json:"notes,omitempty"`
}

// Number derives the invoice number from the millisecond timestamp suffix.
// Not collision-free across a shared millisecond tail; acceptable at this
// volume and deliberately kept, since changing it changes the document
// format contract.
func Number(at time.Time) string {
	ms := fmt.Sprintf("%d", at.UnixMilli())
	return "INV-" + ms[len(ms)-6:]
}

// Build assembles the document from pre-save visit state.
func Build(clientName string, items []Line, totalDue types.Money, notes string, at time.Time) *Document {
	return &Document{
		ClientName: clientName,
		Date:       at.Format("1/2/2006"),
		Number:     Number(at),
		Items:      items,
		TotalDue:   totalDue,
		Notes:      notes,
	}
}

// Renderer turns a Document into a shareable file. Implementations live in
// the infrastructure layer; the projection only depends on this contract.
type Renderer interface {
	// Render produces the file name and raw bytes for the document.
	Render(ctx context.Context, doc *Document) (fileName string, data []byte, err error)
}
