package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, organization_id, category_id, name, serial_number, image, minimum_quantity,
	total_quantity, available_quantity, purchase_date, purchase_source, location, return_required,
	status, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var categoryID *string
	if err := row.Scan(
		&i.ID, &i.OrganizationID, &categoryID, &i.Name, &i.SerialNumber, &i.Image, &i.MinimumQuantity,
		&i.TotalQuantity, &i.AvailableQuantity, &i.PurchaseDate, &i.PurchaseSource, &i.Location, &i.ReturnRequired,
		&i.Status, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, err
	}
	i.CategoryID = deref(categoryID)
	return &i, nil
}

func (r *ItemRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OrganizationID, nullable(item.CategoryID), item.Name, item.SerialNumber, item.Image,
		item.MinimumQuantity, item.TotalQuantity, item.AvailableQuantity, item.PurchaseDate, item.PurchaseSource,
		item.Location, item.ReturnRequired, item.Status, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, "get item", `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, "get item for update", `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// GetActiveByName busca el artículo ACTIVE con ese nombre (sin distinguir mayúsculas) en la organización.
func (r *ItemRepo) GetActiveByName(ctx context.Context, organizationID, name string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE organization_id = $1 AND lower(name) = lower($2) AND status = 'ACTIVE'
		ORDER BY created_at LIMIT 1`
	return r.getOne(ctx, "get item by name", query, organizationID, name)
}

// Update actualiza los campos descriptivos y el estado. Los contadores van por UpdateQuantities.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET category_id = $2, name = $3, image = $4, minimum_quantity = $5, purchase_date = $6,
			purchase_source = $7, location = $8, return_required = $9, status = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, nullable(item.CategoryID), item.Name, item.Image, item.MinimumQuantity, item.PurchaseDate,
		item.PurchaseSource, item.Location, item.ReturnRequired, item.Status, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateQuantities persiste los contadores; la fila debe estar bloqueada por GetForUpdate.
func (r *ItemRepo) UpdateQuantities(ctx context.Context, item *entity.Item) error {
	query := `UPDATE items SET total_quantity = $2, available_quantity = $3, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, item.ID, item.TotalQuantity, item.AvailableQuantity)
	if err != nil {
		return fmt.Errorf("update item quantities: %w", err)
	}
	return nil
}

// ListByOrganization lista artículos de la organización con paginación.
func (r *ItemRepo) ListByOrganization(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE organization_id = $1 AND ($2 = false OR status = 'ACTIVE')
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, organizationID, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// CountByOrganization cuenta los artículos de la organización.
func (r *ItemRepo) CountByOrganization(ctx context.Context, organizationID string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM items WHERE organization_id = $1`, organizationID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// SerialExists indica si el número de serie ya fue asignado.
func (r *ItemRepo) SerialExists(ctx context.Context, serial string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM items WHERE serial_number = $1)`, serial).Scan(&exists); err != nil {
		return false, fmt.Errorf("check serial: %w", err)
	}
	return exists, nil
}
