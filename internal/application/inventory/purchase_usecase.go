package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/inventory"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
	"github.com/jhoicas/suministros-api/pkg/logger"
)

// PurchaseUseCase registro de compras: crea o repone el Item, emite la entrada y guarda el registro de compra.
type PurchaseUseCase struct {
	txRunner TxRunner
	repos    repository.Repositories
	inbound  *InboundLedger
	pool     *InstancePool
	evidence ports.EvidenceStore
	log      *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	repos repository.Repositories,
	inbound *InboundLedger,
	pool *InstancePool,
	evidence ports.EvidenceStore,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner: txRunner,
		repos:    repos,
		inbound:  inbound,
		pool:     pool,
		evidence: evidence,
		log:      log.Named("purchases"),
	}
}

// Register procesa una compra (PURCHASE crea el artículo) o una reposición (RE_PURCHASE suma a uno existente).
func (uc *PurchaseUseCase) Register(ctx context.Context, caller dto.Caller, in dto.RegisterItemRequest) (*dto.RegisterItemResponse, error) {
	if in.Kind != entity.InboundPurchase && in.Kind != entity.InboundRePurchase {
		return nil, domain.ErrInvalidInboundType
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Quantity <= 0 || in.MinimumQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	unitCost := decimal.Zero
	if in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		unitCost = *in.UnitCost
	}
	image, err := ports.ResolveImage(ctx, uc.evidence, in.Image, in.Evidence)
	if err != nil {
		return nil, err
	}

	var (
		item *entity.Item
		reg  *entity.RegisterItem
	)
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		switch in.Kind {
		case entity.InboundPurchase:
			item = &entity.Item{
				OrganizationID:    caller.OrganizationID,
				CategoryID:        in.CategoryID,
				Name:              name,
				Image:             image,
				MinimumQuantity:   in.MinimumQuantity,
				TotalQuantity:     in.Quantity,
				AvailableQuantity: in.Quantity,
				PurchaseDate:      in.PurchaseDate,
				PurchaseSource:    in.PurchaseSource,
				Location:          in.Location,
				ReturnRequired:    in.ReturnRequired,
			}
			if err := createItemInTx(ctx, repos, item); err != nil {
				return err
			}
		case entity.InboundRePurchase:
			existing, err := repos.Items.GetActiveByName(ctx, caller.OrganizationID, name)
			if err != nil {
				return err
			}
			if existing == nil {
				return domain.ErrItemNotFound
			}
			if item, err = LockItem(ctx, repos, caller.OrganizationID, existing.ID); err != nil {
				return err
			}
			if in.CategoryID != "" && in.CategoryID != item.CategoryID {
				if err := checkCategory(ctx, repos, caller.OrganizationID, in.CategoryID); err != nil {
					return err
				}
				item.CategoryID = in.CategoryID
			}
			if err := ApplyAdjustment(ctx, repos, item, in.Quantity, in.Quantity); err != nil {
				return err
			}
			if in.PurchaseDate != nil {
				item.PurchaseDate = in.PurchaseDate
			}
			if in.PurchaseSource != "" {
				item.PurchaseSource = in.PurchaseSource
			}
			if in.Location != "" {
				item.Location = in.Location
			}
			if image != "" {
				item.Image = image
			}
			if err := repos.Items.Update(ctx, item); err != nil {
				return err
			}
		}

		entry, err := uc.inbound.RecordInTx(ctx, repos, InboundInput{
			OrganizationID: caller.OrganizationID,
			ItemID:         item.ID,
			Quantity:       in.Quantity,
			Kind:           in.Kind,
			Image:          image,
			CreatedBy:      caller.UserID,
		})
		if err != nil {
			return err
		}

		now := time.Now()
		reg = &entity.RegisterItem{
			ID:             uuid.New().String(),
			OrganizationID: caller.OrganizationID,
			CategoryID:     item.CategoryID,
			ItemID:         item.ID,
			InventoryInID:  entry.ID,
			Image:          entry.Image,
			Quantity:       in.Quantity,
			UnitCost:       unitCost,
			TotalCost:      inventory.PurchaseTotal(in.Quantity, unitCost),
			PurchaseDate:   in.PurchaseDate,
			PurchaseSource: in.PurchaseSource,
			Location:       in.Location,
			Kind:           in.Kind,
			Status:         entity.StatusActive,
			CreatedBy:      caller.UserID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return repos.Registers.Create(ctx, reg)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("item_id", item.ID).
		Str("kind", in.Kind).
		Int64("quantity", in.Quantity).
		Msg("compra registrada")
	return toRegisterItemResponse(reg, item), nil
}

// Update corrige un registro de compra. Un cambio de cantidad ajusta ambos contadores por el delta con signo;
// si el delta es negativo se detienen las unidades más recientes, si es positivo se aprovisionan nuevas.
func (uc *PurchaseUseCase) Update(ctx context.Context, caller dto.Caller, id string, in dto.UpdateRegisterItemRequest) (*dto.RegisterItemResponse, error) {
	var image *string
	if in.Evidence != nil {
		ref, err := ports.ResolveImage(ctx, uc.evidence, "", in.Evidence)
		if err != nil {
			return nil, err
		}
		image = &ref
	} else if in.Image != nil {
		image = in.Image
	}

	var (
		reg  *entity.RegisterItem
		item *entity.Item
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		if reg, err = lockRegister(ctx, repos, caller.OrganizationID, id); err != nil {
			return err
		}
		if item, err = LockItem(ctx, repos, caller.OrganizationID, reg.ItemID); err != nil {
			return err
		}
		if !item.IsActive() {
			return domain.ErrItemNotFound
		}
		if in.Quantity != nil && *in.Quantity != reg.Quantity {
			if *in.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			delta := *in.Quantity - reg.Quantity
			if err := ApplyAdjustment(ctx, repos, item, delta, delta); err != nil {
				return err
			}
			if delta < 0 {
				err = uc.pool.SoftStopTopN(ctx, repos, item.ID, -delta)
			} else {
				_, err = uc.pool.Provision(ctx, repos, item, delta, reg.Image)
			}
			if err != nil {
				return err
			}
			reg.TotalCost = inventory.AdjustedTotal(reg.Quantity, *in.Quantity, reg.TotalCost)
			reg.Quantity = *in.Quantity
		}
		if in.CategoryID != nil && *in.CategoryID != reg.CategoryID {
			if err := checkCategory(ctx, repos, caller.OrganizationID, *in.CategoryID); err != nil {
				return err
			}
			reg.CategoryID = *in.CategoryID
			item.CategoryID = *in.CategoryID
		}
		if in.Name != nil {
			if err := renameItem(ctx, repos, item, *in.Name); err != nil {
				return err
			}
		}
		if in.PurchaseSource != nil {
			reg.PurchaseSource = *in.PurchaseSource
			item.PurchaseSource = *in.PurchaseSource
		}
		if in.Location != nil {
			reg.Location = *in.Location
			item.Location = *in.Location
		}
		if image != nil {
			reg.Image = *image
			item.Image = *image
		}
		now := time.Now()
		reg.UpdatedAt = now
		item.UpdatedAt = now
		if err := repos.Items.Update(ctx, item); err != nil {
			return err
		}
		return repos.Registers.Update(ctx, reg)
	})
	if err != nil {
		return nil, err
	}
	return toRegisterItemResponse(reg, item), nil
}

// Delete anula un registro de compra. PURCHASE da de baja el artículo completo; RE_PURCHASE descuenta
// la cantidad repuesta y detiene ese número de unidades recientes.
func (uc *PurchaseUseCase) Delete(ctx context.Context, caller dto.Caller, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		reg, err := lockRegister(ctx, repos, caller.OrganizationID, id)
		if err != nil {
			return err
		}
		item, err := LockItem(ctx, repos, caller.OrganizationID, reg.ItemID)
		if err != nil {
			return err
		}
		switch reg.Kind {
		case entity.InboundPurchase:
			if _, err := deactivateInTx(ctx, repos, item); err != nil {
				return err
			}
		case entity.InboundRePurchase:
			if err := ApplyAdjustment(ctx, repos, item, -reg.Quantity, -reg.Quantity); err != nil {
				return err
			}
			if err := uc.pool.SoftStopTopN(ctx, repos, item.ID, reg.Quantity); err != nil {
				return err
			}
		}
		reg.Status = entity.StatusStopped
		reg.UpdatedAt = time.Now()
		return repos.Registers.Update(ctx, reg)
	})
}

// Get obtiene un registro de compra.
func (uc *PurchaseUseCase) Get(ctx context.Context, caller dto.Caller, id string) (*dto.RegisterItemResponse, error) {
	reg, err := uc.repos.Registers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil || reg.OrganizationID != caller.OrganizationID {
		return nil, domain.ErrRegisterItemNotFound
	}
	item, err := uc.repos.Items.GetByID(ctx, reg.ItemID)
	if err != nil {
		return nil, err
	}
	return toRegisterItemResponse(reg, item), nil
}

// List lista los registros de compra de la organización.
func (uc *PurchaseUseCase) List(ctx context.Context, caller dto.Caller, page dto.PageRequest) ([]dto.RegisterItemResponse, error) {
	page.Normalize()
	list, err := uc.repos.Registers.ListByOrganization(ctx, caller.OrganizationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	names := newNameCache(uc.repos)
	out := make([]dto.RegisterItemResponse, 0, len(list))
	for _, reg := range list {
		out = append(out, *toRegisterItemResponse(reg, names.item(ctx, reg.ItemID)))
	}
	return out, nil
}

func lockRegister(ctx context.Context, repos repository.Repositories, organizationID, id string) (*entity.RegisterItem, error) {
	reg, err := repos.Registers.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil || reg.OrganizationID != organizationID || reg.Status != entity.StatusActive {
		return nil, domain.ErrRegisterItemNotFound
	}
	return reg, nil
}

func toRegisterItemResponse(r *entity.RegisterItem, item *entity.Item) *dto.RegisterItemResponse {
	resp := &dto.RegisterItemResponse{
		ID:             r.ID,
		ItemID:         r.ItemID,
		CategoryID:     r.CategoryID,
		InventoryInID:  r.InventoryInID,
		Kind:           r.Kind,
		Quantity:       r.Quantity,
		UnitCost:       r.UnitCost,
		TotalCost:      r.TotalCost,
		PurchaseDate:   r.PurchaseDate,
		PurchaseSource: r.PurchaseSource,
		Location:       r.Location,
		Image:          r.Image,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if item != nil {
		resp.ItemName = item.Name
		resp.SerialNumber = item.SerialNumber
	}
	return resp
}
