package supply

import (
	"context"
	"fmt"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// RequestReceipt datos ya resueltos para el comprobante de una solicitud.
type RequestReceipt struct {
	OrganizationName string
	RequesterEmail   string
	Request          dto.SupplyRequestResponse
	Chase            []dto.ChaseItemResponse
}

// ReceiptRenderer genera la representación imprimible (PDF) del comprobante.
type ReceiptRenderer interface {
	RenderRequestReceipt(ctx context.Context, receipt RequestReceipt) ([]byte, error)
}

// ReceiptUseCase genera el comprobante PDF de una solicitud ya decidida.
type ReceiptUseCase struct {
	requests *RequestUseCase
	repos    repository.Repositories
	renderer ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(requests *RequestUseCase, repos repository.Repositories, renderer ReceiptRenderer) *ReceiptUseCase {
	return &ReceiptUseCase{requests: requests, repos: repos, renderer: renderer}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrSupplyRequestNotFound  si la solicitud no existe o es de otra organización.
//   - domain.ErrAccessDenied           si un usuario sin rol de gestión pide una solicitud ajena.
//   - domain.ErrInvalidRequestStatus   si la solicitud sigue en REQUESTED.
func (uc *ReceiptUseCase) Download(ctx context.Context, caller dto.Caller, id string) ([]byte, string, error) {
	req, err := uc.requests.Get(ctx, caller, id)
	if err != nil {
		return nil, "", err
	}
	if !caller.IsManager() && req.RequesterID != caller.UserID {
		return nil, "", domain.ErrAccessDenied
	}
	if req.Status == entity.RequestRequested {
		return nil, "", fmt.Errorf("%w: la solicitud aún no ha sido decidida", domain.ErrInvalidRequestStatus)
	}

	chase, err := uc.requests.ListChase(ctx, caller, id)
	if err != nil {
		return nil, "", err
	}

	receipt := RequestReceipt{Request: *req, Chase: chase}
	if org, err := uc.repos.Organizations.GetByID(ctx, req.OrganizationID); err == nil && org != nil {
		receipt.OrganizationName = org.Name
	}
	if user, err := uc.repos.Users.GetByID(ctx, req.RequesterID); err == nil && user != nil {
		receipt.RequesterEmail = user.Email
	}

	pdfBytes, err := uc.renderer.RenderRequestReceipt(ctx, receipt)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("solicitud_%s.pdf", req.ID), nil
}
