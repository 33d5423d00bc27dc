package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"consignkeep/internal/core/types"
	"consignkeep/internal/domain/invoice"
)

func TestRenderProducesReadableWorkbook(t *testing.T) {
	at := time.UnixMilli(1767225600123)
	doc := invoice.Build(
		"Al Noor Grocery",
		[]invoice.Line{
			{Name: "Dates 500g (Sold)", Qty: 4, Price: types.MustMoney("5.500"), Total: types.MustMoney("22.000")},
			{Name: "Dates 500g (Restock)", Qty: 20, Price: types.Zero(), Total: types.Zero()},
		},
		types.MustMoney("22.000"),
		"left samples",
		at,
	)

	r := NewRenderer("ConsignKeep")
	name, data, err := r.Render(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "Invoice_Al_Noor_Grocery_INV-600123.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	var flat []string
	for _, row := range rows {
		flat = append(flat, row...)
	}

	assert.Contains(t, flat, "ConsignKeep")
	assert.Contains(t, flat, "INV-600123")
	assert.Contains(t, flat, "Al Noor Grocery")
	assert.Contains(t, flat, "Dates 500g (Sold)")
	assert.Contains(t, flat, "Dates 500g (Restock)")
	assert.Contains(t, flat, "22.000")
	assert.Contains(t, flat, "left samples")
}

func TestFileNameSanitizesClient(t *testing.T) {
	doc := &invoice.Document{ClientName: "Café / Shop #1", Number: "INV-000001"}
	assert.Equal(t, "Invoice_Caf____Shop__1_INV-000001.xlsx", FileName(doc))
}
