package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// applyFilter
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyFilter_SoloOrganizacion(t *testing.T) {
	ds := dialect.From("supply_requests").Select("id")
	query, args, err := applyFilter(ds, requestFilter, repository.ListFilter{OrganizationID: "org-1"}).Prepared(true).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, query, `"organization_id" = $1`)
	assert.Contains(t, query, `ORDER BY "created_at" DESC, "id" DESC`)
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []interface{}{"org-1"}, args)
}

func TestApplyFilter_TodosLosCriterios(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ds := dialect.From(goqu.T("inventory_out").As("e")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("e.item_id")))).
		Select("e.id")
	f := repository.ListFilter{
		OrganizationID: "org-1",
		RequesterID:    "u-1",
		Kind:           "LEND",
		Search:         "taladro",
		From:           &from,
		Ascending:      true,
		Limit:          20,
		Offset:         40,
	}
	query, args, err := applyFilter(ds, outboundFilter, f).Prepared(true).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, query, `"e"."requester_id" =`)
	assert.Contains(t, query, `"e"."kind" =`)
	assert.Contains(t, query, `"i"."name" ILIKE`)
	assert.Contains(t, query, `"e"."created_at" >=`)
	assert.Contains(t, query, `ORDER BY "e"."created_at" ASC, "e"."id" ASC`)
	assert.Contains(t, query, "LIMIT")
	assert.Contains(t, query, "OFFSET")
	assert.Contains(t, args, "%taladro%")
}

func TestApplyFilter_IgnoraColumnasNoAplicables(t *testing.T) {
	ds := dialect.From(goqu.T("inventory_in").As("e")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("e.item_id")))).
		Select("e.id")
	query, _, err := applyFilter(ds, inboundFilter, repository.ListFilter{
		OrganizationID: "org-1",
		Status:         "APPROVED",
		RequesterID:    "u-1",
	}).Prepared(true).ToSQL()
	require.NoError(t, err)

	assert.NotContains(t, query, "status")
	assert.NotContains(t, query, "requester_id")
}

// ──────────────────────────────────────────────────────────────────────────────
// helpers
// ──────────────────────────────────────────────────────────────────────────────

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("otro error")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "cat-1", nullable("cat-1"))
	s := "x"
	assert.Equal(t, "x", deref(&s))
	assert.Equal(t, "", deref(nil))
}
