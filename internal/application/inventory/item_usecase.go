package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/inventory"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
	"github.com/jhoicas/suministros-api/pkg/logger"
)

const serialAttempts = 5

// LockItem obtiene el artículo con bloqueo de fila (SELECT FOR UPDATE) y verifica que pertenezca a la organización.
func LockItem(ctx context.Context, repos repository.Repositories, organizationID, itemID string) (*entity.Item, error) {
	item, err := repos.Items.GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrganizationID != organizationID {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// ApplyAdjustment aplica deltas a un artículo ya bloqueado y persiste los contadores.
func ApplyAdjustment(ctx context.Context, repos repository.Repositories, item *entity.Item, deltaTotal, deltaAvailable int64) error {
	if deltaTotal == 0 && deltaAvailable == 0 {
		return nil
	}
	if err := item.Adjust(deltaTotal, deltaAvailable); err != nil {
		return err
	}
	item.UpdatedAt = time.Now()
	return repos.Items.UpdateQuantities(ctx, item)
}

// AdjustQuantities bloquea el artículo y aplica los deltas. Todo cambio de contadores pasa por aquí
// (o por LockItem + ApplyAdjustment) dentro de la misma transacción que la fila de libro que lo justifica.
func AdjustQuantities(ctx context.Context, repos repository.Repositories, organizationID, itemID string, deltaTotal, deltaAvailable int64) (*entity.Item, error) {
	item, err := LockItem(ctx, repos, organizationID, itemID)
	if err != nil {
		return nil, err
	}
	if err := ApplyAdjustment(ctx, repos, item, deltaTotal, deltaAvailable); err != nil {
		return nil, err
	}
	return item, nil
}

// createItemInTx valida organización, categoría y nombre, genera el serial y persiste el artículo.
func createItemInTx(ctx context.Context, repos repository.Repositories, item *entity.Item) error {
	org, err := repos.Organizations.GetByID(ctx, item.OrganizationID)
	if err != nil {
		return err
	}
	if org == nil {
		return domain.ErrOrganizationNotFound
	}
	if err := checkCategory(ctx, repos, item.OrganizationID, item.CategoryID); err != nil {
		return err
	}
	existing, err := repos.Items.GetActiveByName(ctx, item.OrganizationID, item.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrItemNameExists
	}
	count, err := repos.Items.CountByOrganization(ctx, item.OrganizationID)
	if err != nil {
		return err
	}
	for i := 0; i < serialAttempts; i++ {
		serial := inventory.SerialNumber(item.Name, count+1)
		exists, err := repos.Items.SerialExists(ctx, serial)
		if err != nil {
			return err
		}
		if !exists {
			item.SerialNumber = serial
			break
		}
	}
	if item.SerialNumber == "" {
		return fmt.Errorf("generar número de serie: %w", domain.ErrConflict)
	}
	now := time.Now()
	item.ID = uuid.New().String()
	item.Status = entity.StatusActive
	item.CreatedAt = now
	item.UpdatedAt = now
	return repos.Items.Create(ctx, item)
}

func checkCategory(ctx context.Context, repos repository.Repositories, organizationID, categoryID string) error {
	cat, err := repos.Categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil || cat.OrganizationID != organizationID {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// ItemUseCase administra el agregado Item: alta, edición, baja lógica y consultas.
type ItemUseCase struct {
	txRunner TxRunner
	repos    repository.Repositories
	log      *logger.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(txRunner TxRunner, repos repository.Repositories, log *logger.Logger) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, repos: repos, log: log.Named("items")}
}

// CreateItem registra un artículo sin existencias (las cantidades llegan por registros de compra).
func (uc *ItemUseCase) CreateItem(ctx context.Context, caller dto.Caller, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CategoryID == "" || in.MinimumQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.Item{
		OrganizationID:  caller.OrganizationID,
		CategoryID:      in.CategoryID,
		Name:            name,
		Image:           in.Image,
		MinimumQuantity: in.MinimumQuantity,
		PurchaseSource:  in.PurchaseSource,
		Location:        in.Location,
		ReturnRequired:  in.ReturnRequired,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		return createItemInTx(ctx, repos, item)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", item.ID).Str("serial", item.SerialNumber).Msg("artículo creado")
	return toItemResponse(item), nil
}

// UpdateItem modifica los datos descriptivos. Los contadores no se tocan aquí.
func (uc *ItemUseCase) UpdateItem(ctx context.Context, caller dto.Caller, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	var item *entity.Item
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		item, err = LockItem(ctx, repos, caller.OrganizationID, id)
		if err != nil {
			return err
		}
		if !item.IsActive() {
			return domain.ErrItemNotFound
		}
		if in.CategoryID != nil && *in.CategoryID != item.CategoryID {
			if err := checkCategory(ctx, repos, caller.OrganizationID, *in.CategoryID); err != nil {
				return err
			}
			item.CategoryID = *in.CategoryID
		}
		if in.Name != nil {
			if err := renameItem(ctx, repos, item, *in.Name); err != nil {
				return err
			}
		}
		if in.MinimumQuantity != nil {
			if *in.MinimumQuantity < 0 {
				return domain.ErrInvalidInput
			}
			item.MinimumQuantity = *in.MinimumQuantity
		}
		if in.Image != nil {
			item.Image = *in.Image
		}
		if in.Location != nil {
			item.Location = *in.Location
		}
		if in.ReturnRequired != nil {
			item.ReturnRequired = *in.ReturnRequired
		}
		item.UpdatedAt = time.Now()
		return repos.Items.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

func renameItem(ctx context.Context, repos repository.Repositories, item *entity.Item, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	if name == item.Name {
		return nil
	}
	existing, err := repos.Items.GetActiveByName(ctx, item.OrganizationID, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != item.ID {
		return domain.ErrItemNameExists
	}
	item.Name = name
	return nil
}

// DeactivateItem da de baja el artículo (STOPPED) y detiene todas sus unidades activas. No altera contadores.
func (uc *ItemUseCase) DeactivateItem(ctx context.Context, caller dto.Caller, id string) error {
	var stopped int64
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		item, err := LockItem(ctx, repos, caller.OrganizationID, id)
		if err != nil {
			return err
		}
		stopped, err = deactivateInTx(ctx, repos, item)
		return err
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("item_id", id).Int64("instances", stopped).Msg("artículo dado de baja")
	return nil
}

func deactivateInTx(ctx context.Context, repos repository.Repositories, item *entity.Item) (int64, error) {
	if !item.IsActive() {
		return 0, nil
	}
	now := time.Now()
	item.Status = entity.StatusStopped
	item.UpdatedAt = now
	if err := repos.Items.Update(ctx, item); err != nil {
		return 0, err
	}
	return repos.Instances.StopAllActive(ctx, item.ID, now)
}

// GetItem obtiene un artículo de la organización.
func (uc *ItemUseCase) GetItem(ctx context.Context, caller dto.Caller, id string) (*dto.ItemResponse, error) {
	item, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrganizationID != caller.OrganizationID {
		return nil, domain.ErrItemNotFound
	}
	return toItemResponse(item), nil
}

// ListItems lista artículos de la organización con paginación.
func (uc *ItemUseCase) ListItems(ctx context.Context, caller dto.Caller, activeOnly bool, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.Normalize()
	list, err := uc.repos.Items.ListByOrganization(ctx, caller.OrganizationID, activeOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Returned: len(items)},
	}, nil
}

// ListInstances lista las unidades individuales de un artículo (orden FIFO).
func (uc *ItemUseCase) ListInstances(ctx context.Context, caller dto.Caller, itemID string) ([]dto.ItemInstanceResponse, error) {
	if _, err := uc.GetItem(ctx, caller, itemID); err != nil {
		return nil, err
	}
	list, err := uc.repos.Instances.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemInstanceResponse, 0, len(list))
	for _, in := range list {
		out = append(out, dto.ItemInstanceResponse{
			ID:              in.ID,
			ItemID:          in.ItemID,
			InstanceCode:    in.InstanceCode,
			Disposition:     in.Disposition,
			Status:          in.Status,
			Image:           in.Image,
			FinalImage:      in.FinalImage,
			BorrowerID:      in.BorrowerID,
			SupplyRequestID: in.SupplyRequestID,
			CreatedAt:       in.CreatedAt,
		})
	}
	return out, nil
}

// UsageRanking devuelve los artículos con más salidas registradas.
func (uc *ItemUseCase) UsageRanking(ctx context.Context, caller dto.Caller, limit int) ([]dto.ItemUsageResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	list, err := uc.repos.Outbound.UsageRanking(ctx, caller.OrganizationID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemUsageResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.ItemUsageResponse{ItemID: u.ItemID, ItemName: u.ItemName, Count: u.Count, Quantity: u.Quantity})
	}
	return out, nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:                i.ID,
		OrganizationID:    i.OrganizationID,
		CategoryID:        i.CategoryID,
		Name:              i.Name,
		SerialNumber:      i.SerialNumber,
		Image:             i.Image,
		MinimumQuantity:   i.MinimumQuantity,
		TotalQuantity:     i.TotalQuantity,
		AvailableQuantity: i.AvailableQuantity,
		PurchaseDate:      i.PurchaseDate,
		PurchaseSource:    i.PurchaseSource,
		Location:          i.Location,
		ReturnRequired:    i.ReturnRequired,
		Status:            i.Status,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}
