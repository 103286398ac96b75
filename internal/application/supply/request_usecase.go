package supply

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	domaininv "github.com/jhoicas/suministros-api/internal/domain/inventory"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
	"github.com/jhoicas/suministros-api/pkg/logger"
)

// RequestUseCase flujo de aprobación de solicitudes de suministro.
//
//	REQUESTED -> APPROVED (consumo, terminal)
//	REQUESTED -> RETURN_PENDING (préstamo aprobado) -> RETURNED (vía devolución)
//	REQUESTED -> REJECTED (terminal)
type RequestUseCase struct {
	txRunner inventory.TxRunner
	repos    repository.Repositories
	outbound *inventory.OutboundLedger
	returns  *ReturnUseCase
	notifier ports.Notifier
	log      *logger.Logger
	now      func() time.Time
}

// NewRequestUseCase construye el caso de uso.
func NewRequestUseCase(
	txRunner inventory.TxRunner,
	repos repository.Repositories,
	outbound *inventory.OutboundLedger,
	returns *ReturnUseCase,
	notifier ports.Notifier,
	log *logger.Logger,
) *RequestUseCase {
	return &RequestUseCase{
		txRunner: txRunner,
		repos:    repos,
		outbound: outbound,
		returns:  returns,
		notifier: notifier,
		log:      log.Named("supply_requests"),
		now:      time.Now,
	}
}

// validateDates exige fecha de devolución en préstamos y que no sea anterior a la fecha de uso.
func validateDates(rental bool, useDate time.Time, returnDate *time.Time) error {
	if !rental {
		return nil
	}
	if returnDate == nil || returnDate.IsZero() || returnDate.Before(useDate) {
		return domain.ErrInvalidReturnDate
	}
	return nil
}

// Create registra una solicitud en estado REQUESTED.
func (uc *RequestUseCase) Create(ctx context.Context, caller dto.Caller, in dto.CreateSupplyRequest) (*dto.SupplyRequestResponse, error) {
	if in.ItemID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	useDate := uc.now()
	if in.Rental && in.UseDate != nil && !in.UseDate.IsZero() {
		useDate = *in.UseDate
	}
	if err := validateDates(in.Rental, useDate, in.ReturnDate); err != nil {
		return nil, err
	}
	returnDate := in.ReturnDate
	if !in.Rental {
		returnDate = nil
	}

	var req *entity.SupplyRequest
	box := &ports.Outbox{}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		item, err := repos.Items.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrganizationID != caller.OrganizationID || !item.IsActive() {
			return domain.ErrItemNotFound
		}
		if in.Quantity > item.AvailableQuantity {
			return domain.ErrInsufficientStock
		}
		reRequest, err := repos.Requests.ExistsByRequesterAndItem(ctx, caller.UserID, item.ID)
		if err != nil {
			return err
		}
		now := uc.now()
		req = &entity.SupplyRequest{
			ID:             uuid.New().String(),
			OrganizationID: caller.OrganizationID,
			ItemID:         item.ID,
			RequesterID:    caller.UserID,
			SerialNumber:   item.SerialNumber,
			ProductName:    item.Name,
			Quantity:       in.Quantity,
			Purpose:        strings.TrimSpace(in.Purpose),
			UseDate:        useDate,
			ReturnDate:     returnDate,
			Rental:         in.Rental,
			ReRequest:      reRequest,
			Status:         entity.RequestRequested,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repos.Requests.Create(ctx, req); err != nil {
			return err
		}
		box.Add(requestEvent(ports.EventSupplyRequestCreated, req, ""))
		return nil
	})
	if err != nil {
		return nil, err
	}
	ports.Publish(ctx, uc.notifier, uc.log, box)
	uc.log.Info().Str("request_id", req.ID).Str("item_id", req.ItemID).Bool("rental", req.Rental).Msg("solicitud creada")
	return toRequestResponse(req), nil
}

// UpdateStatus aplica una transición de estado solicitada por un gestor.
//
//   - APPROVED: una sola salida (ISSUE para consumo, LEND para préstamo, que marca las unidades AVAILABLE más
//     antiguas como LEND). El consumo descuenta además el total y queda APPROVED; el préstamo queda RETURN_PENDING.
//   - REJECTED: solo cambia el estado; no se registra salida.
//   - RETURNED: solo préstamos; se delega en el flujo de devolución, único que genera entradas RETURN.
//
// Toda transición válida deja una entrada de auditoría.
func (uc *RequestUseCase) UpdateStatus(ctx context.Context, caller dto.Caller, id string, in dto.UpdateStatusRequest) (*dto.SupplyRequestResponse, error) {
	target := strings.ToUpper(strings.TrimSpace(in.Status))
	var evidenceImage string
	if target == entity.RequestReturned {
		ref, err := ports.ResolveImage(ctx, uc.returns.evidence, in.Image, in.Evidence)
		if err != nil {
			return nil, err
		}
		evidenceImage = ref
	}

	var req *entity.SupplyRequest
	box := &ports.Outbox{}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		if req, err = lockRequest(ctx, repos, caller.OrganizationID, id); err != nil {
			return err
		}
		next, err := domaininv.NextRequestStatus(req.Status, req.Rental, target)
		if err != nil {
			return err
		}

		switch target {
		case entity.RequestApproved:
			kind := entity.OutboundIssue
			if req.Rental {
				kind = entity.OutboundLend
			}
			if _, err := uc.outbound.RecordInTx(ctx, repos, inventory.OutboundInput{
				OrganizationID: caller.OrganizationID,
				Request:        req,
				Quantity:       req.Quantity,
				Kind:           kind,
				CreatedBy:      caller.UserID,
			}, box); err != nil {
				return err
			}
			if !req.Rental {
				if _, err := inventory.AdjustQuantities(ctx, repos, caller.OrganizationID, req.ItemID, -req.Quantity, 0); err != nil {
					return err
				}
			}
			box.Add(requestEvent(ports.EventSupplyRequestApproved, req, req.RequesterID))
		case entity.RequestRejected:
			box.Add(requestEvent(ports.EventSupplyRequestRejected, req, req.RequesterID))
		case entity.RequestReturned:
			ret, err := repos.Returns.GetOpenByRequest(ctx, req.ID)
			if err != nil {
				return err
			}
			if ret == nil {
				if ret, err = uc.returns.createInTx(ctx, repos, req, req.Quantity, uc.now(), entity.ConditionAvailable, evidenceImage); err != nil {
					return err
				}
			}
			// completeInTx actualiza la solicitud y deja la auditoría.
			return uc.returns.completeInTx(ctx, repos, caller, ret, req, evidenceImage, box)
		}

		req.Status = next
		req.UpdatedAt = uc.now()
		if err := repos.Requests.Update(ctx, req); err != nil {
			return err
		}
		return addChase(ctx, repos, req, chaseIssue(next))
	})
	if err != nil {
		return nil, err
	}
	ports.Publish(ctx, uc.notifier, uc.log, box)
	uc.log.Info().Str("request_id", req.ID).Str("status", req.Status).Msg("estado de solicitud actualizado")
	return toRequestResponse(req), nil
}

// UpdateMyRequest permite al solicitante corregir su solicitud mientras siga en REQUESTED.
func (uc *RequestUseCase) UpdateMyRequest(ctx context.Context, caller dto.Caller, id string, in dto.UpdateMySupplyRequest) (*dto.SupplyRequestResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var req *entity.SupplyRequest
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		if req, err = lockOwnRequest(ctx, repos, caller, id); err != nil {
			return err
		}
		useDate := req.UseDate
		if in.Rental && in.UseDate != nil && !in.UseDate.IsZero() {
			useDate = *in.UseDate
		}
		if err := validateDates(in.Rental, useDate, in.ReturnDate); err != nil {
			return err
		}
		item, err := repos.Items.GetByID(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if item == nil || !item.IsActive() {
			return domain.ErrItemNotFound
		}
		if in.Quantity > item.AvailableQuantity {
			return domain.ErrInsufficientStock
		}
		req.Quantity = in.Quantity
		req.Purpose = strings.TrimSpace(in.Purpose)
		req.UseDate = useDate
		req.Rental = in.Rental
		req.ReturnDate = nil
		if in.Rental {
			req.ReturnDate = in.ReturnDate
		}
		req.UpdatedAt = uc.now()
		return repos.Requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return toRequestResponse(req), nil
}

// Delete elimina una solicitud propia que siga en REQUESTED.
func (uc *RequestUseCase) Delete(ctx context.Context, caller dto.Caller, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		req, err := lockOwnRequest(ctx, repos, caller, id)
		if err != nil {
			return err
		}
		return repos.Requests.Delete(ctx, req.ID)
	})
}

// Get obtiene una solicitud de la organización.
func (uc *RequestUseCase) Get(ctx context.Context, caller dto.Caller, id string) (*dto.SupplyRequestResponse, error) {
	req, err := uc.repos.Requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil || req.OrganizationID != caller.OrganizationID {
		return nil, domain.ErrSupplyRequestNotFound
	}
	return toRequestResponse(req), nil
}

// List lista solicitudes de la organización (filtro opcional por estado).
func (uc *RequestUseCase) List(ctx context.Context, caller dto.Caller, q dto.LedgerQuery) ([]dto.SupplyRequestResponse, error) {
	list, err := uc.repos.Requests.List(ctx, inventory.ToFilter(caller.OrganizationID, q))
	if err != nil {
		return nil, err
	}
	return toRequestResponses(list), nil
}

// ListMine lista las solicitudes del usuario actual.
func (uc *RequestUseCase) ListMine(ctx context.Context, caller dto.Caller, q dto.LedgerQuery) ([]dto.SupplyRequestResponse, error) {
	filter := inventory.ToFilter(caller.OrganizationID, q)
	filter.RequesterID = caller.UserID
	list, err := uc.repos.Requests.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toRequestResponses(list), nil
}

// CountByStatus cuenta las solicitudes de la organización por estado (todos los estados presentes, con cero).
func (uc *RequestUseCase) CountByStatus(ctx context.Context, caller dto.Caller) (map[string]int64, error) {
	counts, err := uc.repos.Requests.CountByStatus(ctx, caller.OrganizationID)
	if err != nil {
		return nil, err
	}
	out := map[string]int64{
		entity.RequestRequested:     0,
		entity.RequestApproved:      0,
		entity.RequestRejected:      0,
		entity.RequestReturnPending: 0,
		entity.RequestReturned:      0,
	}
	for k, v := range counts {
		out[k] = v
	}
	return out, nil
}

// ListLentItems lista préstamos aprobados con su estado RENTING, OVERDUE o RETURNED.
func (uc *RequestUseCase) ListLentItems(ctx context.Context, caller dto.Caller, mine bool) ([]dto.LentItemResponse, error) {
	now := uc.now()
	out := make([]dto.LentItemResponse, 0)
	for _, status := range []string{entity.RequestReturnPending, entity.RequestReturned} {
		filter := repository.ListFilter{OrganizationID: caller.OrganizationID, Status: status}
		if mine {
			filter.RequesterID = caller.UserID
		}
		list, err := uc.repos.Requests.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, r := range list {
			if !r.Rental {
				continue
			}
			out = append(out, dto.LentItemResponse{
				RequestID:    r.ID,
				ItemID:       r.ItemID,
				ProductName:  r.ProductName,
				SerialNumber: r.SerialNumber,
				RequesterID:  r.RequesterID,
				Quantity:     r.Quantity,
				UseDate:      r.UseDate,
				ReturnDate:   r.ReturnDate,
				RentStatus:   domaininv.RentStatus(r.Status == entity.RequestReturned, r.ReturnDate, now),
			})
		}
	}
	return out, nil
}

// ListChase devuelve la auditoría de una solicitud.
func (uc *RequestUseCase) ListChase(ctx context.Context, caller dto.Caller, id string) ([]dto.ChaseItemResponse, error) {
	if _, err := uc.Get(ctx, caller, id); err != nil {
		return nil, err
	}
	list, err := uc.repos.Chase.ListByRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChaseItemResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ChaseItemResponse{
			ID:          c.ID,
			RequestID:   c.SupplyRequestID,
			ProductName: c.ProductName,
			Quantity:    c.Quantity,
			Issue:       c.Issue,
			CreatedAt:   c.CreatedAt,
		})
	}
	return out, nil
}

func lockRequest(ctx context.Context, repos repository.Repositories, organizationID, id string) (*entity.SupplyRequest, error) {
	req, err := repos.Requests.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil || req.OrganizationID != organizationID {
		return nil, domain.ErrSupplyRequestNotFound
	}
	return req, nil
}

func lockOwnRequest(ctx context.Context, repos repository.Repositories, caller dto.Caller, id string) (*entity.SupplyRequest, error) {
	req, err := lockRequest(ctx, repos, caller.OrganizationID, id)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != caller.UserID {
		return nil, domain.ErrAccessDenied
	}
	if req.Status != entity.RequestRequested {
		return nil, domain.ErrInvalidRequestStatus
	}
	return req, nil
}

func addChase(ctx context.Context, repos repository.Repositories, req *entity.SupplyRequest, issue string) error {
	return repos.Chase.Create(ctx, &entity.ChaseItem{
		ID:              uuid.New().String(),
		SupplyRequestID: req.ID,
		ProductName:     req.ProductName,
		Quantity:        req.Quantity,
		Issue:           issue,
		CreatedAt:       time.Now(),
	})
}

func chaseIssue(status string) string {
	switch status {
	case entity.RequestApproved:
		return "solicitud aprobada: entrega definitiva"
	case entity.RequestReturnPending:
		return "préstamo aprobado: pendiente de devolución"
	case entity.RequestRejected:
		return "solicitud rechazada"
	case entity.RequestReturned:
		return "préstamo devuelto"
	}
	return fmt.Sprintf("estado %s", status)
}

func requestEvent(kind string, req *entity.SupplyRequest, recipient string) ports.Event {
	return ports.Event{
		Kind:           kind,
		OrganizationID: req.OrganizationID,
		RecipientID:    recipient,
		ItemID:         req.ItemID,
		ItemName:       req.ProductName,
		SerialNumber:   req.SerialNumber,
		RequestID:      req.ID,
		Quantity:       req.Quantity,
	}
}

func toRequestResponse(r *entity.SupplyRequest) *dto.SupplyRequestResponse {
	return &dto.SupplyRequestResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		ItemID:         r.ItemID,
		RequesterID:    r.RequesterID,
		SerialNumber:   r.SerialNumber,
		ProductName:    r.ProductName,
		Quantity:       r.Quantity,
		Purpose:        r.Purpose,
		UseDate:        r.UseDate,
		ReturnDate:     r.ReturnDate,
		Rental:         r.Rental,
		ReRequest:      r.ReRequest,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toRequestResponses(list []*entity.SupplyRequest) []dto.SupplyRequestResponse {
	out := make([]dto.SupplyRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRequestResponse(r))
	}
	return out
}
