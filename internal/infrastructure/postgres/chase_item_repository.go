package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ repository.ChaseItemRepository = (*ChaseItemRepo)(nil)

// ChaseItemRepo auditoría de solicitudes sobre PostgreSQL.
type ChaseItemRepo struct {
	q Querier
}

// NewChaseItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChaseItemRepository(q Querier) *ChaseItemRepo {
	return &ChaseItemRepo{q: q}
}

// Create inserta una fila de auditoría.
func (r *ChaseItemRepo) Create(ctx context.Context, c *entity.ChaseItem) error {
	query := `
		INSERT INTO chase_items (id, supply_request_id, product_name, quantity, issue, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.SupplyRequestID, c.ProductName, c.Quantity, c.Issue, c.CreatedAt); err != nil {
		return fmt.Errorf("insert chase item: %w", err)
	}
	return nil
}

// ListByRequest lista la auditoría de una solicitud en orden cronológico.
func (r *ChaseItemRepo) ListByRequest(ctx context.Context, supplyRequestID string) ([]*entity.ChaseItem, error) {
	query := `
		SELECT id, supply_request_id, product_name, quantity, issue, created_at
		FROM chase_items WHERE supply_request_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, supplyRequestID)
	if err != nil {
		return nil, fmt.Errorf("list chase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChaseItem
	for rows.Next() {
		var c entity.ChaseItem
		if err := rows.Scan(&c.ID, &c.SupplyRequestID, &c.ProductName, &c.Quantity, &c.Issue, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chase item: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
