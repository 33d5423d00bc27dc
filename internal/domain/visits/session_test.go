package visits

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"consignkeep/internal/core/id"
	"consignkeep/internal/core/types"
	"consignkeep/internal/domain/catalogs/client"
	"consignkeep/internal/domain/catalogs/product"
)

func testProduct(name, price string) *product.Product {
	return product.New(name, "matcha", types.MustMoney(price), "tin")
}

func testSession(lines ...Line) *Session {
	return NewSession(client.New("Matcha Corner", "Muscat", ""), lines)
}

func TestTotalDue(t *testing.T) {
	pA := testProduct("Ceremonial", "5.500")
	pB := testProduct("Culinary", "2.250")
	sess := testSession(
		Line{Product: pA, Expected: 10},
		Line{Product: pB, Expected: 4},
	)

	// Nothing entered yet: nothing sold.
	assert.True(t, sess.TotalDue().IsZero())

	sess.SetActual(pA.ID, "6") // sold 4 * 5.500
	sess.SetActual(pB.ID, "4") // sold 0
	assert.Equal(t, "22.000", types.FormatMoney(sess.TotalDue()))

	// TotalDue is recomputed on demand, always consistent with input state.
	sess.SetActual(pB.ID, "1") // sold 3 * 2.250
	assert.Equal(t, "28.750", types.FormatMoney(sess.TotalDue()))

	// Garbage input degrades to "unchanged", not an error.
	sess.SetActual(pB.ID, "not a number")
	assert.Equal(t, "22.000", types.FormatMoney(sess.TotalDue()))
}

func TestReviewItemsSkipsZeroRows(t *testing.T) {
	pA := testProduct("Ceremonial", "5.500")
	pB := testProduct("Culinary", "2.250")
	sess := testSession(
		Line{Product: pA, Expected: 10},
		Line{Product: pB, Expected: 4},
	)

	sess.SetActual(pA.ID, "6")   // sold row for A
	sess.SetRestock(pB.ID, "12") // restock row for B only

	items := sess.ReviewItems()
	assert.Len(t, items, 2)

	assert.Equal(t, "Ceremonial (Sold)", items[0].Name)
	assert.Equal(t, 4, items[0].Qty)
	assert.Equal(t, "22.000", types.FormatMoney(items[0].Total))

	assert.Equal(t, "Culinary (Restock)", items[1].Name)
	assert.Equal(t, 12, items[1].Qty)
	assert.True(t, items[1].Price.IsZero(), "restock rows are zero-priced")
	assert.True(t, items[1].Total.IsZero())
}

func TestReviewItemsFollowCatalogOrder(t *testing.T) {
	pA := testProduct("Ceremonial", "5.500")
	pB := testProduct("Culinary", "2.250")
	sess := testSession(
		Line{Product: pA, Expected: 10},
		Line{Product: pB, Expected: 10},
	)

	// Entered in reverse order; output stays in catalog order, and the
	// sold row of a product precedes its restock row.
	sess.SetRestock(pB.ID, "5")
	sess.SetActual(pB.ID, "8")
	sess.SetRestock(pA.ID, "3")
	sess.SetActual(pA.ID, "7")

	names := []string{}
	for _, it := range sess.ReviewItems() {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{
		"Ceremonial (Sold)", "Ceremonial (Restock)",
		"Culinary (Sold)", "Culinary (Restock)",
	}, names)
}

func TestMaterializeSparse(t *testing.T) {
	pA := testProduct("Ceremonial", "5.500")
	pB := testProduct("Culinary", "2.250")
	pC := testProduct("Hojicha", "1.000")
	sess := testSession(
		Line{Product: pA, Expected: 10},
		Line{Product: pB, Expected: 4},
		Line{Product: pC, Expected: 7},
	)

	sess.SetActual(pA.ID, "6")
	sess.SetRestock(pB.ID, "20")
	// pC untouched: no row at all.

	items := sess.materializeLocked()
	assert.Len(t, items, 2)

	assert.Equal(t, pA.ID, items[0].ProductID)
	assert.Equal(t, 10, items[0].ExpectedQty)
	assert.Equal(t, 6, items[0].ActualQty)
	assert.Equal(t, 0, items[0].RestockQty)
	assert.Equal(t, 4, items[0].SoldQty)

	assert.Equal(t, pB.ID, items[1].ProductID)
	assert.Equal(t, 4, items[1].ActualQty, "blank count resolves to expected")
	assert.Equal(t, 20, items[1].RestockQty)
	assert.Equal(t, 0, items[1].SoldQty)
	assert.Equal(t, 24, items[1].NextBaseline())
}

func TestMaterializeZeroCountIsActivity(t *testing.T) {
	p := testProduct("Ceremonial", "5.500")
	sess := testSession(Line{Product: p, Expected: 0})

	// An explicit "0" count on a zero baseline is still a provided count:
	// the row is persisted as an audit record.
	sess.SetActual(p.ID, "0")
	items := sess.materializeLocked()
	assert.Len(t, items, 1)
	assert.Equal(t, 0, items[0].SoldQty)
}

func TestApplySavedRollsBaselinesAndResets(t *testing.T) {
	p := testProduct("Ceremonial", "5.500")
	sess := testSession(Line{Product: p, Expected: 10})

	sess.SetActual(p.ID, "6")
	sess.SetRestock(p.ID, "20")
	sess.SetNotes("left samples")

	items := sess.materializeLocked()
	sess.applySavedLocked(items)

	assert.Equal(t, 26, sess.Lines()[0].Expected)
	assert.Empty(t, sess.Notes())
	assert.True(t, sess.TotalDue().IsZero(), "inputs reset after save")
}

func TestUnknownProductInputIsIgnored(t *testing.T) {
	p := testProduct("Ceremonial", "5.500")
	sess := testSession(Line{Product: p, Expected: 10})

	sess.SetActual(id.New(), "3")
	assert.True(t, sess.TotalDue().IsZero())
	assert.Empty(t, sess.materializeLocked())
}
