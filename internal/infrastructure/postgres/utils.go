package postgres

import (
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var dialect = goqu.Dialect("postgres")

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullable convierte "" en NULL para columnas de referencia opcionales.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// filterColumns columnas sobre las que aplica ListFilter en cada tabla ("" = no aplica).
type filterColumns struct {
	organization string
	item         string
	requester    string
	kind         string
	status       string
	search       string
	createdAt    string
	id           string
}

// applyFilter agrega a ds los predicados, el orden y la paginación de f.
func applyFilter(ds *goqu.SelectDataset, cols filterColumns, f repository.ListFilter) *goqu.SelectDataset {
	where := []exp.Expression{goqu.I(cols.organization).Eq(f.OrganizationID)}
	if f.ItemID != "" && cols.item != "" {
		where = append(where, goqu.I(cols.item).Eq(f.ItemID))
	}
	if f.RequesterID != "" && cols.requester != "" {
		where = append(where, goqu.I(cols.requester).Eq(f.RequesterID))
	}
	if f.Kind != "" && cols.kind != "" {
		where = append(where, goqu.I(cols.kind).Eq(f.Kind))
	}
	if f.Status != "" && cols.status != "" {
		where = append(where, goqu.I(cols.status).Eq(f.Status))
	}
	if s := strings.TrimSpace(f.Search); s != "" && cols.search != "" {
		where = append(where, goqu.I(cols.search).ILike("%"+s+"%"))
	}
	if f.From != nil {
		where = append(where, goqu.I(cols.createdAt).Gte(*f.From))
	}
	if f.To != nil {
		where = append(where, goqu.I(cols.createdAt).Lte(*f.To))
	}
	ds = ds.Where(where...)
	if f.Ascending {
		ds = ds.Order(goqu.I(cols.createdAt).Asc(), goqu.I(cols.id).Asc())
	} else {
		ds = ds.Order(goqu.I(cols.createdAt).Desc(), goqu.I(cols.id).Desc())
	}
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit))
	}
	if f.Offset > 0 {
		ds = ds.Offset(uint(f.Offset))
	}
	return ds
}
