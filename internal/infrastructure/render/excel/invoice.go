// Package excel renders invoice documents as xlsx workbooks suitable for
// sharing with a client over WhatsApp or email.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"consignkeep/internal/core/types"
	"consignkeep/internal/domain/invoice"
)

// Compile-time check.
var _ invoice.Renderer = (*Renderer)(nil)

// Renderer writes a Document into a single-sheet workbook.
type Renderer struct {
	// BusinessName appears in the workbook header.
	BusinessName string
}

// NewRenderer creates a renderer with the given business name. Empty name
// falls back to "ConsignKeep".
func NewRenderer(businessName string) *Renderer {
	if businessName == "" {
		businessName = "ConsignKeep"
	}
	return &Renderer{BusinessName: businessName}
}

// Render produces the xlsx file name and contents for the document.
func (r *Renderer) Render(_ context.Context, doc *invoice.Document) (string, []byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	row := 1
	set := func(col string, v interface{}) {
		_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
	}

	set("A", r.BusinessName)
	_ = f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row))
	row++

	set("A", "Invoice")
	set("C", doc.Number)
	row++
	set("A", "Date")
	set("C", doc.Date)
	row++
	set("A", "Bill To")
	set("C", doc.ClientName)
	row += 2

	headers := []interface{}{"Item", "Qty", "Unit Price", "Total"}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &headers); err != nil {
		return "", nil, fmt.Errorf("write header row: %w", err)
	}
	row++

	for _, it := range doc.Items {
		line := []interface{}{
			it.Name,
			it.Qty,
			types.FormatMoney(it.Price),
			types.FormatMoney(it.Total),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &line); err != nil {
			return "", nil, fmt.Errorf("write item row: %w", err)
		}
		row++
	}

	row++
	set("C", "Total Due")
	set("D", types.FormatMoney(doc.TotalDue))
	row += 2

	if doc.Notes != "" {
		set("A", "Notes")
		set("B", doc.Notes)
		row++
	}
	set("A", "Payment due upon receipt. Thank you for your business.")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", nil, fmt.Errorf("write workbook: %w", err)
	}

	return FileName(doc), buf.Bytes(), nil
}

// FileName builds a filesystem-safe name like Invoice_Al_Noor_INV-600123.xlsx.
func FileName(doc *invoice.Document) string {
	client := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, doc.ClientName)
	return fmt.Sprintf("Invoice_%s_%s.xlsx", client, doc.Number)
}
