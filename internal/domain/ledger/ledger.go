// Package ledger provides the derivation rules for one product line within
// one consignment visit: how a counted shelf quantity and a restock delta
// turn into units sold and into the stock baseline carried to the next visit.
//
// All quantities are whole units. Raw inputs arrive as free text from the
// operator and are parsed leniently: blank or non-numeric input is never an
// error, it degrades to a safe default at read time.
package ledger

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"consignkeep/internal/core/types"
)

// ParseCount parses a raw operator input as a signed whole quantity.
// Returns (0, false) for blank or non-numeric input.
func ParseCount(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SoldQty derives units sold from the expected baseline and the raw actual
// count. Blank or non-numeric input means nothing was counted: zero sold.
// A count above expected is treated as zero sales, never negative inventory.
func SoldQty(expected int, rawActual string) int {
	actual, ok := ParseCount(rawActual)
	if !ok {
		return 0
	}
	if sold := expected - actual; sold > 0 {
		return sold
	}
	return 0
}

// RestockQty parses the raw restock input. Blank or non-numeric input is
// zero. Negative values are allowed: they represent a correction of a
// previous over-delivery.
func RestockQty(raw string) int {
	n, ok := ParseCount(raw)
	if !ok {
		return 0
	}
	return n
}

// ResolveActual returns the actual count used for persistence. A blank count
// means "unchanged": the expected quantity is carried through rather than
// silently zeroing the stock record.
func ResolveActual(expected int, rawActual string) int {
	actual, ok := ParseCount(rawActual)
	if !ok {
		return expected
	}
	return actual
}

// NextBaseline is the expected quantity carried forward to the next visit:
// what was counted on the shelf plus what was delivered during the visit.
func NextBaseline(actualResolved, restock int) int {
	return actualResolved + restock
}

// LineTotal computes the money owed for one product line.
func LineTotal(sold int, price types.Money) types.Money {
	if sold == 0 {
		return decimal.Zero
	}
	return types.MoneyFromQty(sold).Mul(price)
}
