package supply

import (
	"context"
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

// ReturnUseCase flujo de devolución de préstamos: RETURN_PENDING -> RETURNED | REJECTED.
// Es el único camino que genera entradas de tipo RETURN.
type ReturnUseCase struct {
	txRunner inventory.TxRunner
	repos    repository.Repositories
	inbound  *inventory.InboundLedger
	evidence ports.EvidenceStore
	notifier ports.Notifier
	log      *logger.Logger
	now      func() time.Time
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(
	txRunner inventory.TxRunner,
	repos repository.Repositories,
	inbound *inventory.InboundLedger,
	evidence ports.EvidenceStore,
	notifier ports.Notifier,
	log *logger.Logger,
) *ReturnUseCase {
	return &ReturnUseCase{
		txRunner: txRunner,
		repos:    repos,
		inbound:  inbound,
		evidence: evidence,
		notifier: notifier,
		log:      log.Named("supply_returns"),
		now:      time.Now,
	}
}

// Create registra la devolución de un préstamo aprobado. Solo el solicitante (o un gestor) puede hacerlo.
func (uc *ReturnUseCase) Create(ctx context.Context, caller dto.Caller, in dto.CreateSupplyReturnRequest) (*dto.SupplyReturnResponse, error) {
	if in.SupplyRequestID == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	condition := strings.ToUpper(strings.TrimSpace(in.Condition))
	if condition == "" {
		condition = entity.ConditionAvailable
	}
	if !entity.IsValidCondition(condition) {
		return nil, domain.ErrInvalidInput
	}
	image, err := ports.ResolveImage(ctx, uc.evidence, in.Image, in.Evidence)
	if err != nil {
		return nil, err
	}
	returnDate := uc.now()
	if in.ReturnDate != nil && !in.ReturnDate.IsZero() {
		returnDate = *in.ReturnDate
	}

	var ret *entity.SupplyReturn
	box := &ports.Outbox{}
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		req, err := lockRequest(ctx, repos, caller.OrganizationID, in.SupplyRequestID)
		if err != nil {
			return err
		}
		if req.RequesterID != caller.UserID && !caller.IsManager() {
			return domain.ErrAccessDenied
		}
		if ret, err = uc.createInTx(ctx, repos, req, in.Quantity, returnDate, condition, image); err != nil {
			return err
		}
		box.Add(returnEvent(ports.EventSupplyReturnCreated, ret, ""))
		return nil
	})
	if err != nil {
		return nil, err
	}
	ports.Publish(ctx, uc.notifier, uc.log, box)
	uc.log.Info().Str("return_id", ret.ID).Str("request_id", ret.SupplyRequestID).Msg("devolución registrada")
	return toReturnResponse(ret), nil
}

// createInTx valida la solicitud de origen y guarda la devolución con los datos copiados de ella.
// Una cantidad cero equivale a devolver todo lo prestado; no se admiten devoluciones parciales.
func (uc *ReturnUseCase) createInTx(
	ctx context.Context,
	repos repository.Repositories,
	req *entity.SupplyRequest,
	quantity int64,
	returnDate time.Time,
	condition, image string,
) (*entity.SupplyReturn, error) {
	if !req.Rental || req.Status != entity.RequestReturnPending {
		return nil, domain.ErrInvalidRequestStatus
	}
	if quantity == 0 {
		quantity = req.Quantity
	}
	if quantity != req.Quantity {
		return nil, domain.ErrInvalidInput
	}
	open, err := repos.Returns.GetOpenByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrSupplyReturnExists
	}
	user, err := repos.Users.GetByID(ctx, req.RequesterID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	org, err := repos.Organizations.GetByID(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrOrganizationNotFound
	}
	item, err := repos.Items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrganizationID != req.OrganizationID {
		return nil, domain.ErrItemNotFound
	}

	now := uc.now()
	ret := &entity.SupplyReturn{
		ID:              uuid.New().String(),
		SupplyRequestID: req.ID,
		RequesterID:     user.ID,
		OrganizationID:  org.ID,
		ItemID:          item.ID,
		SerialNumber:    req.SerialNumber,
		ProductName:     req.ProductName,
		Quantity:        quantity,
		UseDate:         req.UseDate,
		ReturnDate:      returnDate,
		Status:          entity.ReturnPending,
		Condition:       condition,
		Image:           image,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := repos.Returns.Create(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// UpdateStatus aprueba (RETURNED) o rechaza (REJECTED) una devolución pendiente.
// RETURNED registra la entrada RETURN que restaura las unidades y cierra la solicitud de origen.
func (uc *ReturnUseCase) UpdateStatus(ctx context.Context, caller dto.Caller, id string, in dto.UpdateStatusRequest) (*dto.SupplyReturnResponse, error) {
	target := strings.ToUpper(strings.TrimSpace(in.Status))
	image, err := ports.ResolveImage(ctx, uc.evidence, in.Image, in.Evidence)
	if err != nil {
		return nil, err
	}

	var ret *entity.SupplyReturn
	box := &ports.Outbox{}
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		current, err := repos.Returns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil || current.OrganizationID != caller.OrganizationID {
			return domain.ErrSupplyReturnNotFound
		}
		// La solicitud se bloquea antes que la devolución, en el mismo orden que el flujo de solicitudes.
		req, err := lockRequest(ctx, repos, caller.OrganizationID, current.SupplyRequestID)
		if err != nil {
			return err
		}
		if ret, err = repos.Returns.GetForUpdate(ctx, id); err != nil {
			return err
		}
		if ret == nil {
			return domain.ErrSupplyReturnNotFound
		}

		switch target {
		case entity.ReturnReturned:
			return uc.completeInTx(ctx, repos, caller, ret, req, image, box)
		case entity.ReturnRejected:
			next, err := domaininv.NextReturnStatus(ret.Status, target)
			if err != nil {
				return err
			}
			ret.Status = next
			ret.UpdatedAt = uc.now()
			if err := repos.Returns.Update(ctx, ret); err != nil {
				return err
			}
			box.Add(returnEvent(ports.EventSupplyReturnRejected, ret, ret.RequesterID))
			return nil
		}
		return domain.ErrInvalidRequestStatus
	})
	if err != nil {
		return nil, err
	}
	ports.Publish(ctx, uc.notifier, uc.log, box)
	uc.log.Info().Str("return_id", ret.ID).Str("status", ret.Status).Msg("estado de devolución actualizado")
	return toReturnResponse(ret), nil
}

// completeInTx marca la devolución como RETURNED: entrada RETURN (restaura unidades LEND -> AVAILABLE),
// cierre de la solicitud de origen y auditoría, todo en la transacción del llamador.
func (uc *ReturnUseCase) completeInTx(
	ctx context.Context,
	repos repository.Repositories,
	caller dto.Caller,
	ret *entity.SupplyReturn,
	req *entity.SupplyRequest,
	image string,
	box *ports.Outbox,
) error {
	next, err := domaininv.NextReturnStatus(ret.Status, entity.ReturnReturned)
	if err != nil {
		return err
	}
	reqNext, err := domaininv.NextRequestStatus(req.Status, req.Rental, entity.RequestReturned)
	if err != nil {
		return err
	}
	finalImage := image
	if finalImage == "" {
		finalImage = ret.Image
	}
	if _, err := uc.inbound.RecordInTx(ctx, repos, inventory.InboundInput{
		OrganizationID: ret.OrganizationID,
		ItemID:         ret.ItemID,
		Quantity:       ret.Quantity,
		Kind:           entity.InboundReturn,
		SupplyReturnID: ret.ID,
		Image:          finalImage,
		CreatedBy:      caller.UserID,
	}); err != nil {
		return err
	}

	now := uc.now()
	ret.Status = next
	ret.UpdatedAt = now
	if err := repos.Returns.Update(ctx, ret); err != nil {
		return err
	}
	req.Status = reqNext
	req.UpdatedAt = now
	if err := repos.Requests.Update(ctx, req); err != nil {
		return err
	}
	if err := addChase(ctx, repos, req, chaseIssue(reqNext)); err != nil {
		return err
	}
	box.Add(returnEvent(ports.EventSupplyReturnApproved, ret, ret.RequesterID))
	return nil
}

// Get obtiene una devolución de la organización.
func (uc *ReturnUseCase) Get(ctx context.Context, caller dto.Caller, id string) (*dto.SupplyReturnResponse, error) {
	ret, err := uc.repos.Returns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil || ret.OrganizationID != caller.OrganizationID {
		return nil, domain.ErrSupplyReturnNotFound
	}
	return toReturnResponse(ret), nil
}

// List lista devoluciones de la organización (filtro opcional por estado).
func (uc *ReturnUseCase) List(ctx context.Context, caller dto.Caller, q dto.LedgerQuery) ([]dto.SupplyReturnResponse, error) {
	list, err := uc.repos.Returns.List(ctx, inventory.ToFilter(caller.OrganizationID, q))
	if err != nil {
		return nil, err
	}
	return toReturnResponses(list), nil
}

func returnEvent(kind string, ret *entity.SupplyReturn, recipient string) ports.Event {
	return ports.Event{
		Kind:           kind,
		OrganizationID: ret.OrganizationID,
		RecipientID:    recipient,
		ItemID:         ret.ItemID,
		ItemName:       ret.ProductName,
		SerialNumber:   ret.SerialNumber,
		RequestID:      ret.SupplyRequestID,
		ReturnID:       ret.ID,
		Quantity:       ret.Quantity,
	}
}

func toReturnResponse(r *entity.SupplyReturn) *dto.SupplyReturnResponse {
	return &dto.SupplyReturnResponse{
		ID:              r.ID,
		SupplyRequestID: r.SupplyRequestID,
		RequesterID:     r.RequesterID,
		OrganizationID:  r.OrganizationID,
		ItemID:          r.ItemID,
		SerialNumber:    r.SerialNumber,
		ProductName:     r.ProductName,
		Quantity:        r.Quantity,
		UseDate:         r.UseDate,
		ReturnDate:      r.ReturnDate,
		Status:          r.Status,
		Condition:       r.Condition,
		Image:           r.Image,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toReturnResponses(list []*entity.SupplyReturn) []dto.SupplyReturnResponse {
	out := make([]dto.SupplyReturnResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReturnResponse(r))
	}
	return out
}
