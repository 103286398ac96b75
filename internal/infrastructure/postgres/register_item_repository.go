package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ repository.RegisterItemRepository = (*RegisterItemRepo)(nil)

const registerColumns = `id, organization_id, category_id, item_id, inventory_in_id, image, quantity, unit_cost,
	total_cost, purchase_date, purchase_source, location, kind, status, created_by, created_at, updated_at`

// RegisterItemRepo registros de compra sobre PostgreSQL. Los costos usan el codec NUMERIC de shopspring/decimal.
type RegisterItemRepo struct {
	q Querier
}

// NewRegisterItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRegisterItemRepository(q Querier) *RegisterItemRepo {
	return &RegisterItemRepo{q: q}
}

func scanRegister(row pgx.Row) (*entity.RegisterItem, error) {
	var g entity.RegisterItem
	var categoryID *string
	if err := row.Scan(
		&g.ID, &g.OrganizationID, &categoryID, &g.ItemID, &g.InventoryInID, &g.Image, &g.Quantity, &g.UnitCost,
		&g.TotalCost, &g.PurchaseDate, &g.PurchaseSource, &g.Location, &g.Kind, &g.Status, &g.CreatedBy,
		&g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}
	g.CategoryID = deref(categoryID)
	return &g, nil
}

func (r *RegisterItemRepo) getOne(ctx context.Context, op, query, id string) (*entity.RegisterItem, error) {
	g, err := scanRegister(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return g, nil
}

// Create persiste un registro de compra.
func (r *RegisterItemRepo) Create(ctx context.Context, g *entity.RegisterItem) error {
	query := `
		INSERT INTO register_items (` + registerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		g.ID, g.OrganizationID, nullable(g.CategoryID), g.ItemID, g.InventoryInID, g.Image, g.Quantity, g.UnitCost,
		g.TotalCost, g.PurchaseDate, g.PurchaseSource, g.Location, g.Kind, g.Status, g.CreatedBy,
		g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert register item: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *RegisterItemRepo) GetByID(ctx context.Context, id string) (*entity.RegisterItem, error) {
	return r.getOne(ctx, "get register item", `SELECT `+registerColumns+` FROM register_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el registro y bloquea la fila.
func (r *RegisterItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.RegisterItem, error) {
	return r.getOne(ctx, "get register item for update",
		`SELECT `+registerColumns+` FROM register_items WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste cantidades, costos, datos de compra y estado.
func (r *RegisterItemRepo) Update(ctx context.Context, g *entity.RegisterItem) error {
	query := `
		UPDATE register_items SET category_id = $2, image = $3, quantity = $4, unit_cost = $5, total_cost = $6,
			purchase_date = $7, purchase_source = $8, location = $9, status = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		g.ID, nullable(g.CategoryID), g.Image, g.Quantity, g.UnitCost, g.TotalCost,
		g.PurchaseDate, g.PurchaseSource, g.Location, g.Status, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update register item: %w", err)
	}
	return nil
}

// ListByOrganization lista registros de compra, más recientes primero.
func (r *RegisterItemRepo) ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]*entity.RegisterItem, error) {
	query := `SELECT ` + registerColumns + ` FROM register_items
		WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list register items: %w", err)
	}
	defer rows.Close()
	var list []*entity.RegisterItem
	for rows.Next() {
		g, err := scanRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("scan register item: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}
