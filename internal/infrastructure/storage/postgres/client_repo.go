package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"consignkeep/internal/core/apperror"
	"consignkeep/internal/core/id"
	"consignkeep/internal/domain/catalogs/client"
)

const clientsTable = "clients"

var clientColumns = []string{
	"id", "name", "address", "phone", "maps_link", "last_visited", "created_at", "status",
}

// Compile-time check.
var _ client.Repository = (*ClientRepo)(nil)

// ClientRepo implements client.Repository on PostgreSQL.
type ClientRepo struct {
	txManager *TxManager
}

// NewClientRepo creates a new client repository.
func NewClientRepo(txManager *TxManager) *ClientRepo {
	return &ClientRepo{txManager: txManager}
}

func (r *ClientRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ClientRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(clientColumns...).From(clientsTable)
}

// Create inserts a new client.
func (r *ClientRepo) Create(ctx context.Context, c *client.Client) error {
	q := r.builder().
		Insert(clientsTable).
		Columns(clientColumns...).
		Values(c.ID, c.Name, c.Address, c.Phone, c.MapsLink, c.LastVisited, c.CreatedAt, c.Status)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert client: %w", err))
	}
	return nil
}

// GetByID retrieves a client by id.
func (r *ClientRepo) GetByID(ctx context.Context, clientID id.ID) (*client.Client, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": clientID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c client.Client
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("client", clientID.String())
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get client: %w", err))
	}
	return &c, nil
}

// Update modifies an existing client. last_visited is deliberately not in
// the SET list; it is owned by TouchLastVisited.
func (r *ClientRepo) Update(ctx context.Context, c *client.Client) error {
	q := r.builder().
		Update(clientsTable).
		Set("name", c.Name).
		Set("address", c.Address).
		Set("phone", c.Phone).
		Set("maps_link", c.MapsLink).
		Set("status", c.Status).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update client: %w", err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("client", c.ID.String())
	}
	return nil
}

// Archive soft-removes a client from the directory.
func (r *ClientRepo) Archive(ctx context.Context, clientID id.ID) error {
	q := r.builder().
		Update(clientsTable).
		Set("status", client.StatusArchived).
		Where(squirrel.Eq{"id": clientID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build archive: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("archive client: %w", err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("client", clientID.String())
	}
	return nil
}

// List returns the filtered, sorted directory. Never-visited clients sort
// to the end regardless of direction (NULLS LAST).
func (r *ClientRepo) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	sql, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	var clients []*client.Client
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &clients, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list clients: %w", err))
	}
	return clients, nil
}

// listQuery builds the directory listing. Never-visited clients sort last
// in both directions so the directory front page stays recent-first.
func (r *ClientRepo) listQuery(filter client.ListFilter) squirrel.SelectBuilder {
	q := r.baseSelect().
		Where(squirrel.Eq{"status": client.StatusActive})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"address": pattern},
		})
	}
	if filter.Address != "" {
		q = q.Where(squirrel.Eq{"address": filter.Address})
	}

	switch filter.Order {
	case client.SortOldestVisit:
		q = q.OrderBy("last_visited ASC NULLS LAST", "name ASC")
	default:
		q = q.OrderBy("last_visited DESC NULLS LAST", "name ASC")
	}

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	return q
}

// Addresses returns the distinct non-empty addresses of active clients.
func (r *ClientRepo) Addresses(ctx context.Context) ([]string, error) {
	q := r.builder().
		Select("DISTINCT address").
		From(clientsTable).
		Where(squirrel.Eq{"status": client.StatusActive}).
		Where(squirrel.NotEq{"address": ""}).
		OrderBy("address ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build addresses: %w", err)
	}

	var addresses []string
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &addresses, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("list addresses: %w", err))
	}
	return addresses, nil
}

// TouchLastVisited stamps the client's last visit time.
func (r *ClientRepo) TouchLastVisited(ctx context.Context, clientID id.ID, visitedAt time.Time) error {
	q := r.builder().
		Update(clientsTable).
		Set("last_visited", visitedAt).
		Where(squirrel.Eq{"id": clientID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build touch: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("touch last_visited: %w", err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("client", clientID.String())
	}
	return nil
}
