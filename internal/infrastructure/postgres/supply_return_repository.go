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

var _ repository.SupplyReturnRepository = (*SupplyReturnRepo)(nil)

const returnColumns = `id, supply_request_id, requester_id, organization_id, item_id, serial_number, product_name,
	quantity, use_date, return_date, status, condition, image, created_at, updated_at`

var returnFilter = filterColumns{
	organization: "organization_id",
	item:         "item_id",
	requester:    "requester_id",
	status:       "status",
	search:       "product_name",
	createdAt:    "created_at",
	id:           "id",
}

// SupplyReturnRepo implementación de SupplyReturnRepository sobre PostgreSQL.
type SupplyReturnRepo struct {
	q Querier
}

// NewSupplyReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyReturnRepository(q Querier) *SupplyReturnRepo {
	return &SupplyReturnRepo{q: q}
}

func scanReturn(row pgx.Row) (*entity.SupplyReturn, error) {
	var s entity.SupplyReturn
	if err := row.Scan(
		&s.ID, &s.SupplyRequestID, &s.RequesterID, &s.OrganizationID, &s.ItemID, &s.SerialNumber, &s.ProductName,
		&s.Quantity, &s.UseDate, &s.ReturnDate, &s.Status, &s.Condition, &s.Image, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplyReturnRepo) getOne(ctx context.Context, op, query string, arg string) (*entity.SupplyReturn, error) {
	s, err := scanReturn(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Create persiste una devolución. El índice parcial impide dos devoluciones abiertas por solicitud.
func (r *SupplyReturnRepo) Create(ctx context.Context, s *entity.SupplyReturn) error {
	query := `
		INSERT INTO supply_returns (` + returnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.SupplyRequestID, s.RequesterID, s.OrganizationID, s.ItemID, s.SerialNumber, s.ProductName,
		s.Quantity, s.UseDate, s.ReturnDate, s.Status, s.Condition, s.Image, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSupplyReturnExists
		}
		return fmt.Errorf("insert supply return: %w", err)
	}
	return nil
}

// GetByID obtiene una devolución por ID.
func (r *SupplyReturnRepo) GetByID(ctx context.Context, id string) (*entity.SupplyReturn, error) {
	return r.getOne(ctx, "get supply return", `SELECT `+returnColumns+` FROM supply_returns WHERE id = $1`, id)
}

// GetForUpdate obtiene la devolución y bloquea la fila.
func (r *SupplyReturnRepo) GetForUpdate(ctx context.Context, id string) (*entity.SupplyReturn, error) {
	return r.getOne(ctx, "get supply return for update",
		`SELECT `+returnColumns+` FROM supply_returns WHERE id = $1 FOR UPDATE`, id)
}

// GetOpenByRequest devuelve la devolución no rechazada de la solicitud, o nil.
func (r *SupplyReturnRepo) GetOpenByRequest(ctx context.Context, supplyRequestID string) (*entity.SupplyReturn, error) {
	return r.getOne(ctx, "get open supply return",
		`SELECT `+returnColumns+` FROM supply_returns WHERE supply_request_id = $1 AND status <> 'REJECTED' LIMIT 1`,
		supplyRequestID)
}

// Update persiste estado, condición e imagen.
func (r *SupplyReturnRepo) Update(ctx context.Context, s *entity.SupplyReturn) error {
	query := `UPDATE supply_returns SET status = $2, condition = $3, image = $4, updated_at = $5 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Status, s.Condition, s.Image, s.UpdatedAt); err != nil {
		return fmt.Errorf("update supply return: %w", err)
	}
	return nil
}

// List lista devoluciones según el filtro.
func (r *SupplyReturnRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.SupplyReturn, error) {
	ds := dialect.From("supply_returns").Select(
		"id", "supply_request_id", "requester_id", "organization_id", "item_id", "serial_number", "product_name",
		"quantity", "use_date", "return_date", "status", "condition", "image", "created_at", "updated_at",
	)
	query, args, err := applyFilter(ds, returnFilter, f).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build supply return query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supply returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplyReturn
	for rows.Next() {
		s, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply return: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
