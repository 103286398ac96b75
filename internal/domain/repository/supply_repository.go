package repository

import (
	"context"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// SupplyRequestRepository define el puerto de persistencia para solicitudes de suministro.
type SupplyRequestRepository interface {
	Create(ctx context.Context, req *entity.SupplyRequest) error
	GetByID(ctx context.Context, id string) (*entity.SupplyRequest, error)
	GetForUpdate(ctx context.Context, id string) (*entity.SupplyRequest, error)
	Update(ctx context.Context, req *entity.SupplyRequest) error
	Delete(ctx context.Context, id string) error
	ExistsByRequesterAndItem(ctx context.Context, requesterID, itemID string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*entity.SupplyRequest, error)
	CountByStatus(ctx context.Context, organizationID string) (map[string]int64, error)
}

// SupplyReturnRepository define el puerto de persistencia para devoluciones.
type SupplyReturnRepository interface {
	Create(ctx context.Context, ret *entity.SupplyReturn) error
	GetByID(ctx context.Context, id string) (*entity.SupplyReturn, error)
	GetForUpdate(ctx context.Context, id string) (*entity.SupplyReturn, error)
	// GetOpenByRequest devuelve la devolución no rechazada de una solicitud, o nil.
	GetOpenByRequest(ctx context.Context, supplyRequestID string) (*entity.SupplyReturn, error)
	Update(ctx context.Context, ret *entity.SupplyReturn) error
	List(ctx context.Context, filter ListFilter) ([]*entity.SupplyReturn, error)
}

// ChaseItemRepository auditoría de cambios de estado de solicitudes.
type ChaseItemRepository interface {
	Create(ctx context.Context, chase *entity.ChaseItem) error
	ListByRequest(ctx context.Context, supplyRequestID string) ([]*entity.ChaseItem, error)
}
