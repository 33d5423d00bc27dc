package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consignkeep/internal/core/id"
	"consignkeep/internal/domain/catalogs/client"
)

func TestClientListQueryOrdering(t *testing.T) {
	repo := NewClientRepo(nil)

	tests := []struct {
		name      string
		order     client.SortOrder
		wantOrder string
	}{
		{
			name:      "newest visit first, never visited last",
			order:     client.SortNewestVisit,
			wantOrder: "ORDER BY last_visited DESC NULLS LAST, name ASC",
		},
		{
			name:      "oldest visit first, never visited still last",
			order:     client.SortOldestVisit,
			wantOrder: "ORDER BY last_visited ASC NULLS LAST, name ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _, err := repo.listQuery(client.ListFilter{Order: tt.order}).ToSql()
			require.NoError(t, err)
			assert.Contains(t, sql, tt.wantOrder)
		})
	}
}

func TestClientListQueryFilters(t *testing.T) {
	repo := NewClientRepo(nil)

	filter := client.DefaultListFilter()
	filter.Search = "noor"
	filter.Address = "Muttrah Souq"

	sql, args, err := repo.listQuery(filter).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "name ILIKE $")
	assert.Contains(t, sql, "address ILIKE $")
	assert.Contains(t, sql, "address = $")
	assert.Contains(t, sql, "LIMIT 50")
	assert.Contains(t, args, "%noor%")
	assert.Contains(t, args, "Muttrah Souq")
}

func TestBaselineQueryShape(t *testing.T) {
	repo := NewVisitRepo(nil)

	sql, args, err := repo.baselineQuery(id.MustParse("0194e6a0-0000-7000-8000-000000000001")).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "SELECT DISTINCT ON (vi.product_id)")
	assert.Contains(t, sql, "vi.actual_qty + vi.restock_qty AS baseline")
	assert.Contains(t, sql, "v.client_id = $1")
	assert.Contains(t, sql, "ORDER BY vi.product_id, v.visit_date DESC")
	assert.Len(t, args, 1)
}
