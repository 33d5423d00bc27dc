package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consignkeep/internal/core/types"
)

func TestNumberUsesTimestampSuffix(t *testing.T) {
	at := time.UnixMilli(1767225600123)
	assert.Equal(t, "INV-600123", Number(at))
}

func TestBuildIsDeterministicForFixedTime(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	items := []Line{
		{Name: "Ceremonial (Sold)", Qty: 4, Price: types.MustMoney("5.500"), Total: types.MustMoney("22.000")},
		{Name: "Ceremonial (Restock)", Qty: 8, Price: types.Zero(), Total: types.Zero()},
	}

	a := Build("Matcha Corner", items, types.MustMoney("22.000"), "settled", at)
	b := Build("Matcha Corner", items, types.MustMoney("22.000"), "settled", at)

	assert.Equal(t, a, b)
	assert.Equal(t, "Matcha Corner", a.ClientName)
	assert.Equal(t, "3/15/2026", a.Date)
	assert.Equal(t, "settled", a.Notes)
	require.Len(t, a.Items, 2)
	assert.Equal(t, "22.000", types.FormatMoney(a.TotalDue))
	assert.Regexp(t, `^INV-\d{6}$`, a.Number)
}
