package repository

import (
	"context"
	"time"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// ItemInstanceRepository define el puerto de persistencia para las unidades individuales.
// El orden FIFO es (created_at, seq); las selecciones bloquean las filas devueltas.
// ListNewestActive solo considera unidades ACTIVE en disposición AVAILABLE.
type ItemInstanceRepository interface {
	CreateBatch(ctx context.Context, instances []*entity.ItemInstance) error
	GetByID(ctx context.Context, id string) (*entity.ItemInstance, error)
	SelectOldestActive(ctx context.Context, itemID, disposition string) (*entity.ItemInstance, error)
	ListNewestActive(ctx context.Context, itemID string, n int) ([]*entity.ItemInstance, error)
	Update(ctx context.Context, instance *entity.ItemInstance) error
	StopAllActive(ctx context.Context, itemID string, at time.Time) (int64, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.ItemInstance, error)
}
