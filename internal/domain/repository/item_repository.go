package repository

import (
	"context"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetForUpdate bloquea la fila hasta el fin de la transacción; toda modificación de contadores pasa por ahí.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	GetActiveByName(ctx context.Context, organizationID, name string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	UpdateQuantities(ctx context.Context, item *entity.Item) error
	ListByOrganization(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) ([]*entity.Item, error)
	CountByOrganization(ctx context.Context, organizationID string) (int64, error)
	SerialExists(ctx context.Context, serial string) (bool, error)
}
