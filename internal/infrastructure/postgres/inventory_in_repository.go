package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ repository.InventoryInRepository = (*InventoryInRepo)(nil)

var inboundFilter = filterColumns{
	organization: "e.organization_id",
	item:         "e.item_id",
	kind:         "e.kind",
	search:       "i.name",
	createdAt:    "e.created_at",
	id:           "e.id",
}

// InventoryInRepo libro de entradas sobre PostgreSQL. Solo inserción.
type InventoryInRepo struct {
	q Querier
}

// NewInventoryInRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryInRepository(q Querier) *InventoryInRepo {
	return &InventoryInRepo{q: q}
}

func scanInbound(row pgx.Row) (*entity.InventoryIn, error) {
	var e entity.InventoryIn
	var categoryID, returnID *string
	if err := row.Scan(
		&e.ID, &e.OrganizationID, &categoryID, &e.ItemID, &returnID, &e.Quantity, &e.Kind, &e.Image,
		&e.CreatedBy, &e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.CategoryID = deref(categoryID)
	e.SupplyReturnID = deref(returnID)
	return &e, nil
}

// Create inserta una fila del libro.
func (r *InventoryInRepo) Create(ctx context.Context, e *entity.InventoryIn) error {
	query := `
		INSERT INTO inventory_in (id, organization_id, category_id, item_id, supply_return_id, quantity, kind,
			image, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OrganizationID, nullable(e.CategoryID), e.ItemID, nullable(e.SupplyReturnID), e.Quantity, e.Kind,
		e.Image, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory in: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *InventoryInRepo) GetByID(ctx context.Context, id string) (*entity.InventoryIn, error) {
	query := `
		SELECT id, organization_id, category_id, item_id, supply_return_id, quantity, kind, image, created_by, created_at
		FROM inventory_in WHERE id = $1`
	e, err := scanInbound(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory in: %w", err)
	}
	return e, nil
}

// List lista entradas según el filtro; Search busca por nombre del artículo.
func (r *InventoryInRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.InventoryIn, error) {
	ds := dialect.From(goqu.T("inventory_in").As("e")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("e.item_id")))).
		Select("e.id", "e.organization_id", "e.category_id", "e.item_id", "e.supply_return_id", "e.quantity",
			"e.kind", "e.image", "e.created_by", "e.created_at")
	query, args, err := applyFilter(ds, inboundFilter, f).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build inventory in query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory in: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryIn
	for rows.Next() {
		e, err := scanInbound(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory in: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
