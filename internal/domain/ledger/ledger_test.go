package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"consignkeep/internal/core/types"
)

func TestSoldQty(t *testing.T) {
	tests := []struct {
		name      string
		expected  int
		rawActual string
		want      int
	}{
		{"normal shrinkage", 10, "6", 4},
		{"count above expected is zero sales", 10, "12", 0},
		{"exact match", 10, "10", 0},
		{"blank count means nothing sold", 10, "", 0},
		{"whitespace only", 10, "   ", 0},
		{"non-numeric degrades to zero", 10, "abc", 0},
		{"sold everything", 7, "0", 7},
		{"zero baseline", 0, "5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SoldQty(tt.expected, tt.rawActual))
		})
	}
}

func TestRestockQty(t *testing.T) {
	assert.Equal(t, 20, RestockQty("20"))
	assert.Equal(t, 0, RestockQty(""))
	assert.Equal(t, 0, RestockQty("x"))
	assert.Equal(t, -3, RestockQty("-3"), "negative restock is a correction")
	assert.Equal(t, 5, RestockQty(" 5 "))
}

func TestResolveActual(t *testing.T) {
	// Blank means "unchanged from expected", not "zero".
	assert.Equal(t, 10, ResolveActual(10, ""))
	assert.Equal(t, 10, ResolveActual(10, "junk"))
	assert.Equal(t, 6, ResolveActual(10, "6"))
	assert.Equal(t, 0, ResolveActual(10, "0"))
}

func TestNextBaseline(t *testing.T) {
	assert.Equal(t, 26, NextBaseline(6, 20))
	assert.Equal(t, 6, NextBaseline(6, 0))
	assert.Equal(t, 3, NextBaseline(6, -3))
	assert.Equal(t, 0, NextBaseline(0, 0))
}

func TestNextBaselineWithBlankCount(t *testing.T) {
	// No count entered: baseline carries expected plus the delivery.
	expected := 8
	actual := ResolveActual(expected, "")
	assert.Equal(t, 18, NextBaseline(actual, RestockQty("10")))
}

func TestLineTotal(t *testing.T) {
	price := types.MustMoney("1.250")

	assert.Equal(t, "5.000", types.FormatMoney(LineTotal(4, price)))
	assert.True(t, LineTotal(0, price).IsZero())

	// 3-decimal subunit currency keeps full precision.
	assert.Equal(t, "0.815", types.FormatMoney(LineTotal(5, types.MustMoney("0.163"))))
}
