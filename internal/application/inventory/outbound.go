package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
	"github.com/jhoicas/suministros-api/pkg/logger"
)

// OutboundInput datos de una salida originada por una solicitud aprobada.
type OutboundInput struct {
	OrganizationID string // organización del usuario que aprueba
	Request        *entity.SupplyRequest
	CategoryID     string
	Quantity       int64
	Kind           string
	CreatedBy      string
}

// OutboundLedger libro de salidas. Cada fila descuenta disponibilidad y, en préstamos, marca unidades LEND.
type OutboundLedger struct {
	repos repository.Repositories
	pool  *InstancePool
	log   *logger.Logger
}

// NewOutboundLedger construye el libro de salidas.
func NewOutboundLedger(repos repository.Repositories, pool *InstancePool, log *logger.Logger) *OutboundLedger {
	return &OutboundLedger{repos: repos, pool: pool, log: log.Named("outbound")}
}

// RecordInTx registra una salida dentro de la transacción del llamador. Bloquea el Item antes de
// verificar disponible >= cantidad, de modo que dos salidas concurrentes no pueden dejar stock negativo.
// Si el disponible queda en o por debajo del mínimo encola la señal de stock bajo en box.
func (l *OutboundLedger) RecordInTx(ctx context.Context, repos repository.Repositories, in OutboundInput, box *ports.Outbox) (*entity.InventoryOut, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.OutboundIssue && in.Kind != entity.OutboundLend {
		return nil, domain.ErrInvalidInput
	}
	if in.Request == nil {
		return nil, domain.ErrSupplyRequestNotFound
	}
	if in.Request.OrganizationID != in.OrganizationID {
		return nil, domain.ErrAccessDenied
	}
	item, err := LockItem(ctx, repos, in.OrganizationID, in.Request.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsActive() {
		return nil, domain.ErrItemNotFound
	}
	categoryID := in.CategoryID
	if categoryID == "" {
		categoryID = item.CategoryID
	}
	if err := checkCategory(ctx, repos, in.OrganizationID, categoryID); err != nil {
		return nil, err
	}
	org, err := repos.Organizations.GetByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrOrganizationNotFound
	}
	if item.AvailableQuantity < in.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	entry := &entity.InventoryOut{
		ID:              uuid.New().String(),
		OrganizationID:  in.OrganizationID,
		CategoryID:      categoryID,
		ItemID:          item.ID,
		SupplyRequestID: in.Request.ID,
		RequesterID:     in.Request.RequesterID,
		Quantity:        in.Quantity,
		Kind:            in.Kind,
		CreatedBy:       in.CreatedBy,
		CreatedAt:       time.Now(),
	}
	if err := repos.Outbound.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := ApplyAdjustment(ctx, repos, item, 0, -in.Quantity); err != nil {
		return nil, err
	}
	if in.Kind == entity.OutboundLend {
		if err := l.pool.Lend(ctx, repos, item.ID, in.Quantity, in.Request.RequesterID, in.Request.ID); err != nil {
			return nil, err
		}
	}
	if item.BelowMinimum() && box != nil {
		box.Add(ports.Event{
			Kind:           ports.EventStockShortage,
			OrganizationID: item.OrganizationID,
			ItemID:         item.ID,
			ItemName:       item.Name,
			SerialNumber:   item.SerialNumber,
			Current:        item.AvailableQuantity,
			Minimum:        item.MinimumQuantity,
		})
	}
	return entry, nil
}

// ListOutbound lista salidas de la organización con filtros.
func (l *OutboundLedger) ListOutbound(ctx context.Context, caller dto.Caller, q dto.LedgerQuery) ([]dto.OutboundResponse, error) {
	list, err := l.repos.Outbound.List(ctx, ToFilter(caller.OrganizationID, q))
	if err != nil {
		return nil, err
	}
	return OutboundResponses(ctx, l.repos, list), nil
}

// ListMyOutbound lista las salidas cuyo solicitante es el usuario actual.
func (l *OutboundLedger) ListMyOutbound(ctx context.Context, caller dto.Caller, q dto.LedgerQuery) ([]dto.OutboundResponse, error) {
	filter := ToFilter(caller.OrganizationID, q)
	filter.RequesterID = caller.UserID
	list, err := l.repos.Outbound.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return OutboundResponses(ctx, l.repos, list), nil
}

// OutboundResponses mapea filas del libro de salidas a respuestas desnormalizadas.
func OutboundResponses(ctx context.Context, repos repository.Repositories, list []*entity.InventoryOut) []dto.OutboundResponse {
	names := newNameCache(repos)
	out := make([]dto.OutboundResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.OutboundResponse{
			ID:              e.ID,
			SupplyRequestID: e.SupplyRequestID,
			ItemID:          e.ItemID,
			ItemName:        names.item(ctx, e.ItemID).Name,
			CategoryName:    names.category(ctx, e.CategoryID),
			RequesterID:     e.RequesterID,
			Quantity:        e.Quantity,
			Kind:            e.Kind,
			CreatedAt:       e.CreatedAt,
		})
	}
	return out
}
