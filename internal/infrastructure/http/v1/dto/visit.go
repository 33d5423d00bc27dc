package dto

import (
	"time"

	"consignkeep/internal/core/types"
	"consignkeep/internal/domain/invoice"
	"consignkeep/internal/domain/visits"
)

// --- Request DTOs ---

// SaveVisitRequest is the request body for saving a visit. Counts and
// restocks key raw user input by product id; blank or non-numeric values
// degrade rather than fail, so no numeric binding is applied here.
type SaveVisitRequest struct {
	// Counts maps product id to the raw actual-count input. A missing or
	// blank entry means the shelf count was not taken for that product.
	Counts map[string]string `json:"counts"`

	// Restocks maps product id to the raw restock input (signed).
	Restocks map[string]string `json:"restocks"`

	Notes string `json:"notes"`
}

// --- Response DTOs ---

// SessionLineResponse is one working-set row of an opened visit session.
type SessionLineResponse struct {
	Product  ProductResponse `json:"product"`
	Expected int             `json:"expected"`
}

// SessionResponse is the opened working set for a client.
type SessionResponse struct {
	Client ClientResponse        `json:"client"`
	Lines  []SessionLineResponse `json:"lines"`
}

// FromSession creates response DTO from an opened session.
func FromSession(sess *visits.Session) SessionResponse {
	lines := sess.Lines()
	resp := SessionResponse{
		Client: FromClient(sess.Client()),
		Lines:  make([]SessionLineResponse, 0, len(lines)),
	}
	for _, ln := range lines {
		resp.Lines = append(resp.Lines, SessionLineResponse{
			Product:  FromProduct(ln.Product),
			Expected: ln.Expected,
		})
	}
	return resp
}

// ReviewItemResponse is one priced summary row of a visit.
type ReviewItemResponse struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price string `json:"price"`
	Total string `json:"total"`
}

// FromReviewItems creates response rows from session review items.
func FromReviewItems(items []visits.ReviewItem) []ReviewItemResponse {
	out := make([]ReviewItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ReviewItemResponse{
			Name:  it.Name,
			Qty:   it.Qty,
			Price: types.FormatMoney(it.Price),
			Total: types.FormatMoney(it.Total),
		})
	}
	return out
}

// VisitResponse is the response body for a stored visit.
type VisitResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	Notes     string    `json:"notes,omitempty"`
	TotalDue  string    `json:"totalDue"`
	Status    string    `json:"status"`
	VisitDate time.Time `json:"visitDate"`
}

// FromVisit creates response DTO from domain entity.
func FromVisit(v *visits.Visit) VisitResponse {
	return VisitResponse{
		ID:        v.ID.String(),
		ClientID:  v.ClientID.String(),
		Notes:     v.Notes,
		TotalDue:  types.FormatMoney(v.TotalDue),
		Status:    string(v.Status),
		VisitDate: v.VisitDate,
	}
}

// SaveVisitResponse echoes the saved visit plus the review rows it priced.
type SaveVisitResponse struct {
	Visit VisitResponse        `json:"visit"`
	Items []ReviewItemResponse `json:"items"`
}

// VisitItemResponse is one stored line item of a visit.
type VisitItemResponse struct {
	ID          string `json:"id"`
	VisitID     string `json:"visitId"`
	ProductID   string `json:"productId"`
	ExpectedQty int    `json:"expectedQty"`
	ActualQty   int    `json:"actualQty"`
	RestockQty  int    `json:"restockQty"`
	SoldQty     int    `json:"soldQty"`
}

// FromVisitItems creates response DTOs from stored line items.
func FromVisitItems(items []visits.VisitItem) []VisitItemResponse {
	out := make([]VisitItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, VisitItemResponse{
			ID:          it.ID.String(),
			VisitID:     it.VisitID.String(),
			ProductID:   it.ProductID.String(),
			ExpectedQty: it.ExpectedQty,
			ActualQty:   it.ActualQty,
			RestockQty:  it.RestockQty,
			SoldQty:     it.SoldQty,
		})
	}
	return out
}

// InvoiceLineResponse is one display row of an invoice document.
type InvoiceLineResponse struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price string `json:"price"`
	Total string `json:"total"`
}

// InvoiceResponse mirrors the invoice document for JSON consumers.
type InvoiceResponse struct {
	ClientName string                `json:"clientName"`
	Date       string                `json:"date"`
	Number     string                `json:"invoiceNumber"`
	Items      []InvoiceLineResponse `json:"items"`
	TotalDue   string                `json:"totalDue"`
	Notes      string                `json:"notes,omitempty"`
}

// FromInvoice creates response DTO from an invoice document.
func FromInvoice(doc *invoice.Document) InvoiceResponse {
	resp := InvoiceResponse{
		ClientName: doc.ClientName,
		Date:       doc.Date,
		Number:     doc.Number,
		Items:      make([]InvoiceLineResponse, 0, len(doc.Items)),
		TotalDue:   types.FormatMoney(doc.TotalDue),
		Notes:      doc.Notes,
	}
	for _, it := range doc.Items {
		resp.Items = append(resp.Items, InvoiceLineResponse{
			Name:  it.Name,
			Qty:   it.Qty,
			Price: types.FormatMoney(it.Price),
			Total: types.FormatMoney(it.Total),
		})
	}
	return resp
}
