package visits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consignkeep/internal/core/apperror"
	"consignkeep/internal/core/id"
	"consignkeep/internal/core/types"
	"consignkeep/internal/domain/catalogs/client"
	"consignkeep/internal/domain/catalogs/product"
)

// --- Mocks ---

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockVisitRepo struct {
	visits   []*Visit
	items    []VisitItem
	baseline map[id.ID]int

	failCreateVisit error
	failCreateItems error
}

func (m *mockVisitRepo) CreateVisit(ctx context.Context, v *Visit) error {
	if m.failCreateVisit != nil {
		return m.failCreateVisit
	}
	m.visits = append(m.visits, v)
	return nil
}

func (m *mockVisitRepo) CreateItems(ctx context.Context, items []VisitItem) error {
	if m.failCreateItems != nil {
		return m.failCreateItems
	}
	m.items = append(m.items, items...)
	return nil
}

func (m *mockVisitRepo) BaselineByProduct(ctx context.Context, clientID id.ID) (map[id.ID]int, error) {
	return m.baseline, nil
}

func (m *mockVisitRepo) History(ctx context.Context, clientID id.ID, limit int) ([]*Visit, error) {
	if limit < len(m.visits) {
		return m.visits[:limit], nil
	}
	return m.visits, nil
}

func (m *mockVisitRepo) ItemsByVisit(ctx context.Context, visitID id.ID) ([]VisitItem, error) {
	var out []VisitItem
	for _, it := range m.items {
		if it.VisitID == visitID {
			out = append(out, it)
		}
	}
	return out, nil
}

type mockClientRepo struct {
	clients map[id.ID]*client.Client
	touched []time.Time
}

func (m *mockClientRepo) Create(ctx context.Context, c *client.Client) error { return nil }
func (m *mockClientRepo) GetByID(ctx context.Context, clientID id.ID) (*client.Client, error) {
	if c, ok := m.clients[clientID]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("client", clientID.String())
}
func (m *mockClientRepo) Update(ctx context.Context, c *client.Client) error { return nil }
func (m *mockClientRepo) Archive(ctx context.Context, clientID id.ID) error  { return nil }
func (m *mockClientRepo) Addresses(ctx context.Context) ([]string, error)    { return nil, nil }
func (m *mockClientRepo) List(ctx context.Context, f client.ListFilter) ([]*client.Client, error) {
	return nil, nil
}
func (m *mockClientRepo) TouchLastVisited(ctx context.Context, clientID id.ID, visitedAt time.Time) error {
	m.touched = append(m.touched, visitedAt)
	return nil
}

type mockProductRepo struct {
	products []*product.Product
}

func (m *mockProductRepo) Create(ctx context.Context, p *product.Product) error { return nil }
func (m *mockProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return nil, apperror.NewNotFound("product", productID.String())
}
func (m *mockProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }
func (m *mockProductRepo) Delete(ctx context.Context, productID id.ID) error    { return nil }
func (m *mockProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int) error {
	return nil
}
func (m *mockProductRepo) List(ctx context.Context, f product.ListFilter) ([]*product.Product, error) {
	return m.products, nil
}

type fixture struct {
	svc      *Service
	repo     *mockVisitRepo
	clients  *mockClientRepo
	client   *client.Client
	products []*product.Product
}

func newFixture(t *testing.T, baseline map[id.ID]int, products ...*product.Product) *fixture {
	t.Helper()
	cl := client.New("Matcha Corner", "Muscat", "")

	repo := &mockVisitRepo{baseline: baseline}
	clients := &mockClientRepo{clients: map[id.ID]*client.Client{cl.ID: cl}}
	svc := NewService(repo, clients, &mockProductRepo{products: products}, &mockTxManager{})

	return &fixture{svc: svc, repo: repo, clients: clients, client: cl, products: products}
}

// --- Tests ---

func TestOpenBuildsWorkingSet(t *testing.T) {
	pA := testProduct("Ceremonial", "5.500")
	pB := testProduct("Culinary", "2.250")
	f := newFixture(t, map[id.ID]int{pA.ID: 15}, pA, pB)

	sess, err := f.svc.Open(context.Background(), f.client.ID)
	require.NoError(t, err)

	lines := sess.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 15, lines[0].Expected, "baseline from the prior visit")
	assert.Equal(t, 0, lines[1].Expected, "fresh pair opens at zero")
}

func TestOpenUnknownClient(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Open(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestSavePersistsVisitAndItems(t *testing.T) {
	pA := testProduct("Ceremonial", "5.500")
	pB := testProduct("Culinary", "2.250")
	f := newFixture(t, map[id.ID]int{pA.ID: 10}, pA, pB)

	sess, err := f.svc.Open(context.Background(), f.client.ID)
	require.NoError(t, err)

	sess.SetActual(pA.ID, "6")
	sess.SetRestock(pB.ID, "20")

	visit, err := f.svc.Save(context.Background(), sess, "left samples")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, visit.Status)
	assert.Equal(t, "left samples", visit.Notes)
	assert.Equal(t, "22.000", types.FormatMoney(visit.TotalDue))

	require.Len(t, f.repo.items, 2)
	for _, it := range f.repo.items {
		assert.Equal(t, visit.ID, it.VisitID)
	}

	// total_due always equals the sum over line items of sold * price.
	sum := types.Zero()
	for _, it := range f.repo.items {
		var price types.Money
		for _, p := range f.products {
			if p.ID == it.ProductID {
				price = p.Price
			}
		}
		sum = sum.Add(types.MoneyFromQty(it.SoldQty).Mul(price))
	}
	assert.True(t, sum.Equal(visit.TotalDue))

	require.Len(t, f.clients.touched, 1)
	assert.Equal(t, visit.VisitDate, f.clients.touched[0])
	require.NotNil(t, f.client.LastVisited)
}

func TestSaveEmptyVisit(t *testing.T) {
	p := testProduct("Ceremonial", "5.500")
	f := newFixture(t, nil, p)

	sess, err := f.svc.Open(context.Background(), f.client.ID)
	require.NoError(t, err)

	// All inputs blank, all restocks zero: a valid but empty record.
	visit, err := f.svc.Save(context.Background(), sess, "")
	require.NoError(t, err)

	assert.True(t, visit.TotalDue.IsZero())
	assert.Len(t, f.repo.visits, 1)
	assert.Empty(t, f.repo.items, "no activity, no rows")
}

func TestSaveTwiceUsesRefreshedBaseline(t *testing.T) {
	p := testProduct("Ceremonial", "5.500")
	f := newFixture(t, nil, p)

	sess, err := f.svc.Open(context.Background(), f.client.ID)
	require.NoError(t, err)

	// First save: expected 0, count 5, restock 10 -> baseline 15.
	sess.SetActual(p.ID, "5")
	sess.SetRestock(p.ID, "10")
	_, err = f.svc.Save(context.Background(), sess, "")
	require.NoError(t, err)
	assert.Equal(t, 15, sess.Lines()[0].Expected)

	// Second save on the same session reconciles against 15.
	sess.SetActual(p.ID, "12")
	visit, err := f.svc.Save(context.Background(), sess, "")
	require.NoError(t, err)

	require.Len(t, f.repo.items, 2)
	second := f.repo.items[1]
	assert.Equal(t, 15, second.ExpectedQty)
	assert.Equal(t, 3, second.SoldQty)
	assert.Equal(t, "16.500", types.FormatMoney(visit.TotalDue))
}

func TestSaveFailureRetainsInputs(t *testing.T) {
	p := testProduct("Ceremonial", "5.500")
	f := newFixture(t, map[id.ID]int{p.ID: 10}, p)

	sess, err := f.svc.Open(context.Background(), f.client.ID)
	require.NoError(t, err)

	sess.SetActual(p.ID, "6")
	f.repo.failCreateItems = errors.New("connection reset")

	_, err = f.svc.Save(context.Background(), sess, "notes")
	require.Error(t, err)

	// Inputs retained for retry; baseline not rolled forward; client not touched.
	assert.Equal(t, "22.000", types.FormatMoney(sess.TotalDue()))
	assert.Equal(t, 10, sess.Lines()[0].Expected)
	assert.Empty(t, f.clients.touched)
	assert.Nil(t, f.client.LastVisited)

	// Retry succeeds without re-entering counts.
	f.repo.failCreateItems = nil
	visit, err := f.svc.Save(context.Background(), sess, "notes")
	require.NoError(t, err)
	assert.Equal(t, "22.000", types.FormatMoney(visit.TotalDue))
}

func TestSaveWithInvoiceReflectsPreSaveState(t *testing.T) {
	p := testProduct("Ceremonial", "5.500")
	f := newFixture(t, map[id.ID]int{p.ID: 10}, p)

	sess, err := f.svc.Open(context.Background(), f.client.ID)
	require.NoError(t, err)

	sess.SetActual(p.ID, "6")
	sess.SetRestock(p.ID, "8")

	visit, doc, err := f.svc.SaveWithInvoice(context.Background(), sess, "monthly settlement")
	require.NoError(t, err)
	require.NotNil(t, visit)
	require.NotNil(t, doc)

	// The invoice was built before the save cleared the inputs.
	assert.Equal(t, "Matcha Corner", doc.ClientName)
	assert.Equal(t, "monthly settlement", doc.Notes)
	assert.Equal(t, "22.000", types.FormatMoney(doc.TotalDue))
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Ceremonial (Sold)", doc.Items[0].Name)
	assert.Equal(t, "Ceremonial (Restock)", doc.Items[1].Name)

	// And the save still happened.
	assert.Len(t, f.repo.visits, 1)
	assert.True(t, sess.TotalDue().IsZero())
}

func TestHistoryDefaultLimit(t *testing.T) {
	p := testProduct("Ceremonial", "5.500")
	f := newFixture(t, nil, p)

	sess, err := f.svc.Open(context.Background(), f.client.ID)
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		_, err = f.svc.Save(context.Background(), sess, "")
		require.NoError(t, err)
	}

	visits, err := f.svc.History(context.Background(), f.client.ID, 0)
	require.NoError(t, err)
	assert.Len(t, visits, 5)
}
