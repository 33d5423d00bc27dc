package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"consignkeep/internal/core/apperror"
	"consignkeep/internal/core/id"
	"consignkeep/internal/domain/visits"
)

const (
	visitsTable     = "visits"
	visitItemsTable = "visit_items"
)

var (
	visitColumns     = []string{"id", "client_id", "notes", "total_due", "status", "visit_date"}
	visitItemColumns = []string{"id", "visit_id", "product_id", "expected_qty", "actual_qty", "restock_qty", "sold_qty"}
)

// Compile-time check.
var _ visits.Repository = (*VisitRepo)(nil)

// VisitRepo implements visits.Repository on PostgreSQL.
type VisitRepo struct {
	txManager *TxManager
}

// NewVisitRepo creates a new visit repository.
func NewVisitRepo(txManager *TxManager) *VisitRepo {
	return &VisitRepo{txManager: txManager}
}

func (r *VisitRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CreateVisit inserts the visit header row.
func (r *VisitRepo) CreateVisit(ctx context.Context, v *visits.Visit) error {
	q := r.builder().
		Insert(visitsTable).
		Columns(visitColumns...).
		Values(v.ID, v.ClientID, v.Notes, v.TotalDue, v.Status, v.VisitDate)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert visit: %w", err))
	}
	return nil
}

// CreateItems batch-inserts the visit's line items in one statement.
func (r *VisitRepo) CreateItems(ctx context.Context, items []visits.VisitItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.builder().
		Insert(visitItemsTable).
		Columns(visitItemColumns...)
	for _, it := range items {
		q = q.Values(it.ID, it.VisitID, it.ProductID, it.ExpectedQty, it.ActualQty, it.RestockQty, it.SoldQty)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert visit items: %w", err))
	}
	return nil
}

// BaselineByProduct derives each product's expected baseline from the
// client's most recent visit item: actual_qty + restock_qty of the latest
// line per product. Baselines are recomputed from history on every visit
// open rather than kept in a mutable running-stock column.
func (r *VisitRepo) BaselineByProduct(ctx context.Context, clientID id.ID) (map[id.ID]int, error) {
	sql, args, err := r.baselineQuery(clientID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build baseline query: %w", err)
	}

	var rows []struct {
		ProductID id.ID `db:"product_id"`
		Baseline  int   `db:"baseline"`
	}
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("query baseline: %w", err))
	}

	baseline := make(map[id.ID]int, len(rows))
	for _, row := range rows {
		baseline[row.ProductID] = row.Baseline
	}
	return baseline, nil
}

// baselineQuery picks, per product, the line of the client's most recent
// visit and projects it to the next expected quantity.
func (r *VisitRepo) baselineQuery(clientID id.ID) squirrel.SelectBuilder {
	return r.builder().
		Select("vi.product_id", "vi.actual_qty + vi.restock_qty AS baseline").
		Options("DISTINCT ON (vi.product_id)").
		From(visitItemsTable + " vi").
		Join(visitsTable + " v ON v.id = vi.visit_id").
		Where(squirrel.Eq{"v.client_id": clientID}).
		OrderBy("vi.product_id", "v.visit_date DESC")
}

// History returns the client's most recent visits, newest first.
func (r *VisitRepo) History(ctx context.Context, clientID id.ID, limit int) ([]*visits.Visit, error) {
	q := r.builder().
		Select(visitColumns...).
		From(visitsTable).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("visit_date DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history: %w", err)
	}

	var result []*visits.Visit
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &result, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("query history: %w", err))
	}
	return result, nil
}

// ItemsByVisit returns a stored visit's line items.
func (r *VisitRepo) ItemsByVisit(ctx context.Context, visitID id.ID) ([]visits.VisitItem, error) {
	q := r.builder().
		Select(visitItemColumns...).
		From(visitItemsTable).
		Where(squirrel.Eq{"visit_id": visitID}).
		OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var items []visits.VisitItem
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("query visit items: %w", err))
	}
	return items, nil
}
