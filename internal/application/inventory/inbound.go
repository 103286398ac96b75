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

// InboundInput datos de una entrada al inventario.
type InboundInput struct {
	OrganizationID string
	ItemID         string
	Quantity       int64
	Kind           string
	SupplyReturnID string
	Image          string
	CreatedBy      string
}

// InboundLedger libro de entradas. Cada fila ajusta el agregado y aprovisiona o restaura unidades.
type InboundLedger struct {
	txRunner TxRunner
	repos    repository.Repositories
	pool     *InstancePool
	evidence ports.EvidenceStore
	log      *logger.Logger
}

// NewInboundLedger construye el libro de entradas.
func NewInboundLedger(txRunner TxRunner, repos repository.Repositories, pool *InstancePool, evidence ports.EvidenceStore, log *logger.Logger) *InboundLedger {
	return &InboundLedger{txRunner: txRunner, repos: repos, pool: pool, evidence: evidence, log: log.Named("inbound")}
}

// RecordInTx registra una entrada usando los repositorios de la transacción del llamador.
//
//   - PURCHASE / RE_PURCHASE: los contadores ya los ajustó el registro de compra; aprovisiona quantity unidades.
//   - RETURN: exige la devolución; suma quantity a total y disponible y pasa las LEND más antiguas a AVAILABLE.
//   - OTHER: suma quantity a total y disponible y aprovisiona las unidades correspondientes.
func (l *InboundLedger) RecordInTx(ctx context.Context, repos repository.Repositories, in InboundInput) (*entity.InventoryIn, error) {
	if in.Quantity <= 0 || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidInboundKind(in.Kind) {
		return nil, domain.ErrInvalidInboundType
	}
	if in.Kind == entity.InboundReturn {
		ret, err := repos.Returns.GetByID(ctx, in.SupplyReturnID)
		if err != nil {
			return nil, err
		}
		if ret == nil || ret.OrganizationID != in.OrganizationID || ret.ItemID != in.ItemID {
			return nil, domain.ErrSupplyReturnNotFound
		}
	}
	org, err := repos.Organizations.GetByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrOrganizationNotFound
	}
	item, err := LockItem(ctx, repos, in.OrganizationID, in.ItemID)
	if err != nil {
		return nil, err
	}
	// Un artículo detenido solo recibe devoluciones de unidades ya prestadas.
	if in.Kind != entity.InboundReturn && !item.IsActive() {
		return nil, domain.ErrItemNotFound
	}

	switch in.Kind {
	case entity.InboundPurchase, entity.InboundRePurchase:
		if in.Image == "" {
			in.Image = item.Image
		}
	case entity.InboundReturn, entity.InboundOther:
		if err := ApplyAdjustment(ctx, repos, item, in.Quantity, in.Quantity); err != nil {
			return nil, err
		}
	}

	entry := &entity.InventoryIn{
		ID:             uuid.New().String(),
		OrganizationID: in.OrganizationID,
		CategoryID:     item.CategoryID,
		ItemID:         item.ID,
		SupplyReturnID: in.SupplyReturnID,
		Quantity:       in.Quantity,
		Kind:           in.Kind,
		Image:          in.Image,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      time.Now(),
	}
	if err := repos.Inbound.Create(ctx, entry); err != nil {
		return nil, err
	}

	switch in.Kind {
	case entity.InboundReturn:
		err = l.pool.Restore(ctx, repos, item.ID, in.Quantity, in.Image)
	default:
		_, err = l.pool.Provision(ctx, repos, item, in.Quantity, in.Image)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordInbound registra una entrada manual. Solo admite el tipo OTHER: las compras entran por el
// registro de compra y las devoluciones por el flujo de devolución.
func (l *InboundLedger) RecordInbound(ctx context.Context, caller dto.Caller, in dto.InboundRequest) (*dto.InboundResponse, error) {
	kind := in.Kind
	if kind == "" {
		kind = entity.InboundOther
	}
	if kind != entity.InboundOther {
		return nil, domain.ErrInvalidInboundType
	}
	image, err := ports.ResolveImage(ctx, l.evidence, in.Image, in.Evidence)
	if err != nil {
		return nil, err
	}
	var entry *entity.InventoryIn
	err = l.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		entry, err = l.RecordInTx(ctx, repos, InboundInput{
			OrganizationID: caller.OrganizationID,
			ItemID:         in.ItemID,
			Quantity:       in.Quantity,
			Kind:           kind,
			Image:          image,
			CreatedBy:      caller.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Str("item_id", entry.ItemID).Int64("quantity", entry.Quantity).Msg("entrada registrada")
	resp := InboundResponses(ctx, l.repos, []*entity.InventoryIn{entry})
	return &resp[0], nil
}

// ListInbound lista entradas de la organización con filtros.
func (l *InboundLedger) ListInbound(ctx context.Context, caller dto.Caller, q dto.LedgerQuery) ([]dto.InboundResponse, error) {
	list, err := l.repos.Inbound.List(ctx, ToFilter(caller.OrganizationID, q))
	if err != nil {
		return nil, err
	}
	return InboundResponses(ctx, l.repos, list), nil
}

// InboundResponses mapea filas del libro a respuestas con nombres de artículo y categoría.
func InboundResponses(ctx context.Context, repos repository.Repositories, list []*entity.InventoryIn) []dto.InboundResponse {
	names := newNameCache(repos)
	out := make([]dto.InboundResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.InboundResponse{
			ID:             e.ID,
			ItemID:         e.ItemID,
			ItemName:       names.item(ctx, e.ItemID).Name,
			CategoryName:   names.category(ctx, e.CategoryID),
			SupplyReturnID: e.SupplyReturnID,
			Quantity:       e.Quantity,
			Kind:           e.Kind,
			Image:          e.Image,
			CreatedBy:      e.CreatedBy,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out
}

// ToFilter convierte los filtros de consulta en criterios de repositorio acotados a la organización.
func ToFilter(organizationID string, q dto.LedgerQuery) repository.ListFilter {
	return repository.ListFilter{
		OrganizationID: organizationID,
		ItemID:         q.ItemID,
		Kind:           q.Kind,
		Status:         q.Status,
		Search:         q.Search,
		From:           q.From,
		To:             q.To,
		Ascending:      q.Sort == "asc",
		Limit:          q.Limit,
		Offset:         q.Offset,
	}
}

