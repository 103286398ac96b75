package supply

import (
	"context"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// ExportUseCase accesos de solo lectura para materializar hojas de cálculo.
// Lee con los repositorios del pool, por lo que solo ve estado confirmado.
type ExportUseCase struct {
	repos repository.Repositories
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(repos repository.Repositories) *ExportUseCase {
	return &ExportUseCase{repos: repos}
}

func all(organizationID string) repository.ListFilter {
	return repository.ListFilter{OrganizationID: organizationID, Ascending: true}
}

// ListAllInbound devuelve todas las entradas de la organización.
func (uc *ExportUseCase) ListAllInbound(ctx context.Context, caller dto.Caller) ([]dto.InboundResponse, error) {
	list, err := uc.repos.Inbound.List(ctx, all(caller.OrganizationID))
	if err != nil {
		return nil, err
	}
	return inventory.InboundResponses(ctx, uc.repos, list), nil
}

// ListAllOutbound devuelve todas las salidas de la organización.
func (uc *ExportUseCase) ListAllOutbound(ctx context.Context, caller dto.Caller) ([]dto.OutboundResponse, error) {
	list, err := uc.repos.Outbound.List(ctx, all(caller.OrganizationID))
	if err != nil {
		return nil, err
	}
	return inventory.OutboundResponses(ctx, uc.repos, list), nil
}

// ListAllRequests devuelve todas las solicitudes de la organización.
func (uc *ExportUseCase) ListAllRequests(ctx context.Context, caller dto.Caller) ([]dto.SupplyRequestResponse, error) {
	list, err := uc.repos.Requests.List(ctx, all(caller.OrganizationID))
	if err != nil {
		return nil, err
	}
	return toRequestResponses(list), nil
}

// ListAllReturns devuelve todas las devoluciones de la organización.
func (uc *ExportUseCase) ListAllReturns(ctx context.Context, caller dto.Caller) ([]dto.SupplyReturnResponse, error) {
	list, err := uc.repos.Returns.List(ctx, all(caller.OrganizationID))
	if err != nil {
		return nil, err
	}
	return toReturnResponses(list), nil
}
