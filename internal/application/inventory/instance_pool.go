package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/inventory"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
	"github.com/jhoicas/suministros-api/pkg/logger"
)

// InstancePool aplica la política de selección FIFO sobre las unidades individuales.
// Todas las operaciones corren dentro de la transacción del llamador, que ya tiene bloqueada la fila del Item.
type InstancePool struct {
	log *logger.Logger
}

// NewInstancePool construye el pool.
func NewInstancePool(log *logger.Logger) *InstancePool {
	return &InstancePool{log: log.Named("instances")}
}

// Provision crea count unidades AVAILABLE con código único derivado del serial del artículo.
func (p *InstancePool) Provision(ctx context.Context, repos repository.Repositories, item *entity.Item, count int64, image string) ([]*entity.ItemInstance, error) {
	if count <= 0 {
		return nil, nil
	}
	now := time.Now()
	list := make([]*entity.ItemInstance, 0, count)
	for i := int64(0); i < count; i++ {
		list = append(list, &entity.ItemInstance{
			ID:           uuid.New().String(),
			ItemID:       item.ID,
			InstanceCode: inventory.InstanceCode(item.SerialNumber),
			Disposition:  entity.DispositionAvailable,
			Status:       entity.StatusActive,
			Image:        image,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	if err := repos.Instances.CreateBatch(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// SelectOldestActive devuelve la unidad ACTIVE más antigua con la disposición pedida, bloqueada para update.
func (p *InstancePool) SelectOldestActive(ctx context.Context, repos repository.Repositories, itemID, disposition string) (*entity.ItemInstance, error) {
	inst, err := repos.Instances.SelectOldestActive(ctx, itemID, disposition)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		p.log.Error().
			Str("item_id", itemID).
			Str("disposition", disposition).
			Msg("no hay unidad activa con la disposición requerida: contadores e instancias no coinciden")
		return nil, domain.ErrItemInstanceNotFound
	}
	return inst, nil
}

// TransitionDisposition cambia la disposición de una unidad. Al volver a AVAILABLE o detenerse
// se guarda la imagen de condición final y se limpian prestatario y solicitud.
func (p *InstancePool) TransitionDisposition(ctx context.Context, repos repository.Repositories, inst *entity.ItemInstance, disposition, finalImage string) error {
	if !entity.IsValidDisposition(disposition) {
		return domain.ErrInvalidInput
	}
	inst.Disposition = disposition
	if disposition != entity.DispositionLend {
		inst.BorrowerID = ""
		inst.SupplyRequestID = ""
		if finalImage != "" {
			inst.FinalImage = finalImage
		}
	}
	if disposition == entity.DispositionStopped {
		inst.Status = entity.StatusStopped
	}
	inst.UpdatedAt = time.Now()
	return repos.Instances.Update(ctx, inst)
}

// Lend pasa las count unidades AVAILABLE más antiguas a LEND a nombre del prestatario.
func (p *InstancePool) Lend(ctx context.Context, repos repository.Repositories, itemID string, count int64, borrowerID, requestID string) error {
	for i := int64(0); i < count; i++ {
		inst, err := p.SelectOldestActive(ctx, repos, itemID, entity.DispositionAvailable)
		if err != nil {
			return err
		}
		inst.BorrowerID = borrowerID
		inst.SupplyRequestID = requestID
		if err := p.TransitionDisposition(ctx, repos, inst, entity.DispositionLend, ""); err != nil {
			return err
		}
	}
	return nil
}

// Restore devuelve las count unidades LEND más antiguas a AVAILABLE con la imagen de condición final.
func (p *InstancePool) Restore(ctx context.Context, repos repository.Repositories, itemID string, count int64, finalImage string) error {
	for i := int64(0); i < count; i++ {
		inst, err := p.SelectOldestActive(ctx, repos, itemID, entity.DispositionLend)
		if err != nil {
			return err
		}
		if err := p.TransitionDisposition(ctx, repos, inst, entity.DispositionAvailable, finalImage); err != nil {
			return err
		}
	}
	return nil
}

// SoftStopTopN detiene las n unidades ACTIVE más recientes. Si hay menos de n no modifica nada.
func (p *InstancePool) SoftStopTopN(ctx context.Context, repos repository.Repositories, itemID string, n int64) error {
	if n <= 0 {
		return nil
	}
	list, err := repos.Instances.ListNewestActive(ctx, itemID, int(n))
	if err != nil {
		return err
	}
	if int64(len(list)) < n {
		p.log.Error().
			Str("item_id", itemID).
			Int64("requested", n).
			Int("active", len(list)).
			Msg("no hay suficientes unidades activas para detener")
		return domain.ErrItemInstanceNotFound
	}
	for _, inst := range list {
		if err := p.TransitionDisposition(ctx, repos, inst, entity.DispositionStopped, ""); err != nil {
			return err
		}
	}
	return nil
}
