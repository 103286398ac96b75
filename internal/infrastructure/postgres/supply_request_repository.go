package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ repository.SupplyRequestRepository = (*SupplyRequestRepo)(nil)

const requestColumns = `id, organization_id, item_id, requester_id, serial_number, product_name, quantity,
	purpose, use_date, return_date, rental, re_request, status, created_at, updated_at`

var requestFilter = filterColumns{
	organization: "organization_id",
	item:         "item_id",
	requester:    "requester_id",
	status:       "status",
	search:       "product_name",
	createdAt:    "created_at",
	id:           "id",
}

// SupplyRequestRepo implementación de SupplyRequestRepository sobre PostgreSQL.
type SupplyRequestRepo struct {
	q Querier
}

// NewSupplyRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyRequestRepository(q Querier) *SupplyRequestRepo {
	return &SupplyRequestRepo{q: q}
}

func scanRequest(row pgx.Row) (*entity.SupplyRequest, error) {
	var s entity.SupplyRequest
	if err := row.Scan(
		&s.ID, &s.OrganizationID, &s.ItemID, &s.RequesterID, &s.SerialNumber, &s.ProductName, &s.Quantity,
		&s.Purpose, &s.UseDate, &s.ReturnDate, &s.Rental, &s.ReRequest, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplyRequestRepo) getOne(ctx context.Context, op, query string, id string) (*entity.SupplyRequest, error) {
	s, err := scanRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Create persiste una solicitud.
func (r *SupplyRequestRepo) Create(ctx context.Context, s *entity.SupplyRequest) error {
	query := `
		INSERT INTO supply_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.OrganizationID, s.ItemID, s.RequesterID, s.SerialNumber, s.ProductName, s.Quantity,
		s.Purpose, s.UseDate, s.ReturnDate, s.Rental, s.ReRequest, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supply request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *SupplyRequestRepo) GetByID(ctx context.Context, id string) (*entity.SupplyRequest, error) {
	return r.getOne(ctx, "get supply request", `SELECT `+requestColumns+` FROM supply_requests WHERE id = $1`, id)
}

// GetForUpdate obtiene la solicitud y bloquea la fila.
func (r *SupplyRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.SupplyRequest, error) {
	return r.getOne(ctx, "get supply request for update",
		`SELECT `+requestColumns+` FROM supply_requests WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste los campos editables y el estado.
func (r *SupplyRequestRepo) Update(ctx context.Context, s *entity.SupplyRequest) error {
	query := `
		UPDATE supply_requests SET quantity = $2, purpose = $3, use_date = $4, return_date = $5, rental = $6,
			status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Quantity, s.Purpose, s.UseDate, s.ReturnDate, s.Rental, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supply request: %w", err)
	}
	return nil
}

// Delete elimina una solicitud (y su auditoría por cascada).
func (r *SupplyRequestRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM supply_requests WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete supply request: %w", err)
	}
	return nil
}

// ExistsByRequesterAndItem indica si el usuario ya había solicitado el artículo.
func (r *SupplyRequestRepo) ExistsByRequesterAndItem(ctx context.Context, requesterID, itemID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM supply_requests WHERE requester_id = $1 AND item_id = $2)`
	if err := r.q.QueryRow(ctx, query, requesterID, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check supply request: %w", err)
	}
	return exists, nil
}

// List lista solicitudes según el filtro.
func (r *SupplyRequestRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.SupplyRequest, error) {
	ds := dialect.From("supply_requests").Select(
		"id", "organization_id", "item_id", "requester_id", "serial_number", "product_name", "quantity",
		"purpose", "use_date", "return_date", "rental", "re_request", "status", "created_at", "updated_at",
	)
	query, args, err := applyFilter(ds, requestFilter, f).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build supply request query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supply requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplyRequest
	for rows.Next() {
		s, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supply request: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CountByStatus agrupa las solicitudes de la organización por estado.
func (r *SupplyRequestRepo) CountByStatus(ctx context.Context, organizationID string) (map[string]int64, error) {
	rows, err := r.q.Query(ctx,
		`SELECT status, count(*) FROM supply_requests WHERE organization_id = $1 GROUP BY status`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("count supply requests: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
