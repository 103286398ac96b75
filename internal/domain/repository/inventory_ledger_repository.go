package repository

import (
	"context"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// InventoryInRepository libro de entradas (solo inserción).
type InventoryInRepository interface {
	Create(ctx context.Context, entry *entity.InventoryIn) error
	GetByID(ctx context.Context, id string) (*entity.InventoryIn, error)
	List(ctx context.Context, filter ListFilter) ([]*entity.InventoryIn, error)
}

// InventoryOutRepository libro de salidas (solo inserción).
type InventoryOutRepository interface {
	Create(ctx context.Context, entry *entity.InventoryOut) error
	List(ctx context.Context, filter ListFilter) ([]*entity.InventoryOut, error)
	UsageRanking(ctx context.Context, organizationID string, limit int) ([]ItemUsage, error)
}
