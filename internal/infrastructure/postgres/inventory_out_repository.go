package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ repository.InventoryOutRepository = (*InventoryOutRepo)(nil)

var outboundFilter = filterColumns{
	organization: "e.organization_id",
	item:         "e.item_id",
	requester:    "e.requester_id",
	kind:         "e.kind",
	search:       "i.name",
	createdAt:    "e.created_at",
	id:           "e.id",
}

// InventoryOutRepo libro de salidas sobre PostgreSQL. Solo inserción.
type InventoryOutRepo struct {
	q Querier
}

// NewInventoryOutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryOutRepository(q Querier) *InventoryOutRepo {
	return &InventoryOutRepo{q: q}
}

func scanOutbound(row pgx.Row) (*entity.InventoryOut, error) {
	var e entity.InventoryOut
	var categoryID *string
	if err := row.Scan(
		&e.ID, &e.OrganizationID, &categoryID, &e.ItemID, &e.SupplyRequestID, &e.RequesterID, &e.Quantity,
		&e.Kind, &e.CreatedBy, &e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.CategoryID = deref(categoryID)
	return &e, nil
}

// Create inserta una fila del libro.
func (r *InventoryOutRepo) Create(ctx context.Context, e *entity.InventoryOut) error {
	query := `
		INSERT INTO inventory_out (id, organization_id, category_id, item_id, supply_request_id, requester_id,
			quantity, kind, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OrganizationID, nullable(e.CategoryID), e.ItemID, e.SupplyRequestID, e.RequesterID,
		e.Quantity, e.Kind, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory out: %w", err)
	}
	return nil
}

// List lista salidas según el filtro; RequesterID restringe a "mis salidas".
func (r *InventoryOutRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.InventoryOut, error) {
	ds := dialect.From(goqu.T("inventory_out").As("e")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("e.item_id")))).
		Select("e.id", "e.organization_id", "e.category_id", "e.item_id", "e.supply_request_id", "e.requester_id",
			"e.quantity", "e.kind", "e.created_by", "e.created_at")
	query, args, err := applyFilter(ds, outboundFilter, f).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build inventory out query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory out: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryOut
	for rows.Next() {
		e, err := scanOutbound(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory out: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// UsageRanking cuenta salidas por artículo, de mayor a menor frecuencia.
func (r *InventoryOutRepo) UsageRanking(ctx context.Context, organizationID string, limit int) ([]repository.ItemUsage, error) {
	ds := dialect.From(goqu.T("inventory_out").As("e")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("e.item_id")))).
		Select(goqu.I("e.item_id"), goqu.I("i.name"), goqu.COUNT("*").As("uses"), goqu.L("COALESCE(SUM(e.quantity), 0)::bigint").As("qty")).
		Where(goqu.I("e.organization_id").Eq(organizationID)).
		GroupBy(goqu.I("e.item_id"), goqu.I("i.name")).
		Order(goqu.I("uses").Desc(), goqu.I("i.name").Asc()).
		Limit(uint(limit))
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build usage ranking query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("usage ranking: %w", err)
	}
	defer rows.Close()
	var list []repository.ItemUsage
	for rows.Next() {
		var u repository.ItemUsage
		if err := rows.Scan(&u.ItemID, &u.ItemName, &u.Count, &u.Quantity); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
