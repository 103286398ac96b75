package repository

import (
	"context"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// RegisterItemRepository define el puerto de persistencia para registros de compra.
type RegisterItemRepository interface {
	Create(ctx context.Context, reg *entity.RegisterItem) error
	GetByID(ctx context.Context, id string) (*entity.RegisterItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.RegisterItem, error)
	Update(ctx context.Context, reg *entity.RegisterItem) error
	ListByOrganization(ctx context.Context, organizationID string, limit, offset int) ([]*entity.RegisterItem, error)
}
