package supply_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/internal/application/supply"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	domaininv "github.com/jhoicas/suministros-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Solicitudes
// ──────────────────────────────────────────────────────────────────────────────

func TestRequest_PrestamoAprobadoMarcaUnidadesLend(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Proyector", 5)
	require.NoError(t, err)

	req, err := e.request(itemID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestRequested, req.Status)

	req, err = e.setRequestStatus(req.ID, entity.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestReturnPending, req.Status)

	it, err := e.item(itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), it.TotalQuantity)
	assert.Equal(t, int64(3), it.AvailableQuantity)

	disp, err := e.dispositions(itemID)
	require.NoError(t, err)
	assert.Equal(t, 2, disp[entity.DispositionLend])
	assert.Equal(t, 3, disp[entity.DispositionAvailable])

	rows, err := e.outboundRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.OutboundLend, rows[0].Kind)
	assert.Equal(t, userID, rows[0].RequesterID)
}

func TestRequest_ConsumoDescuentaTotalYDisponible(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Resma", 5)
	require.NoError(t, err)

	req, err := e.request(itemID, 3, false)
	require.NoError(t, err)
	req, err = e.setRequestStatus(req.ID, entity.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestApproved, req.Status)

	it, err := e.item(itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), it.TotalQuantity)
	assert.Equal(t, int64(2), it.AvailableQuantity)

	rows, err := e.outboundRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.OutboundIssue, rows[0].Kind)
}

func TestRequest_CantidadMayorAlDisponible_Falla(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Silla", 5)
	require.NoError(t, err)

	_, err = e.request(itemID, 10, true)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	it, err := e.item(itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), it.AvailableQuantity)
}

func TestRequest_PrestamoSinFechaDeDevolucion_Falla(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Mesa", 1)
	require.NoError(t, err)

	_, err = e.requests.Create(e.ctx, caller(userID), dto.CreateSupplyRequest{ItemID: itemID, Quantity: 1, Rental: true})
	assert.ErrorIs(t, err, domain.ErrInvalidReturnDate)
}

func TestRequest_RechazoNoRegistraSalida(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Carpa", 2)
	require.NoError(t, err)

	req, err := e.request(itemID, 1, false)
	require.NoError(t, err)
	req, err = e.setRequestStatus(req.ID, entity.RequestRejected)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestRejected, req.Status)

	rows, err := e.outboundRows()
	require.NoError(t, err)
	assert.Empty(t, rows)
	it, err := e.item(itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), it.AvailableQuantity)
}

func TestRequest_EstadosTerminalesNoAdmitenCambios(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Tóner", 5)
	require.NoError(t, err)

	rejected, err := e.request(itemID, 1, false)
	require.NoError(t, err)
	_, err = e.setRequestStatus(rejected.ID, entity.RequestRejected)
	require.NoError(t, err)

	consumed, err := e.request(itemID, 1, false)
	require.NoError(t, err)
	_, err = e.setRequestStatus(consumed.ID, entity.RequestApproved)
	require.NoError(t, err)

	for _, id := range []string{rejected.ID, consumed.ID} {
		for _, target := range []string{entity.RequestApproved, entity.RequestRejected, entity.RequestReturned} {
			_, err := e.setRequestStatus(id, target)
			assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus, "id=%s target=%s", id, target)
		}
	}

	it, err := e.item(itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), it.TotalQuantity)
	assert.Equal(t, int64(4), it.AvailableQuantity)
}

func TestRequest_DevolverConsumo_Falla(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Lápiz", 3)
	require.NoError(t, err)
	req, err := e.request(itemID, 1, false)
	require.NoError(t, err)

	_, err = e.setRequestStatus(req.ID, entity.RequestReturned)
	assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus)
}

func TestRequest_SegundaSolicitudDelMismoArticuloMarcaReRequest(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Cable", 5)
	require.NoError(t, err)

	first, err := e.request(itemID, 1, false)
	require.NoError(t, err)
	assert.False(t, first.ReRequest)
	second, err := e.request(itemID, 1, false)
	require.NoError(t, err)
	assert.True(t, second.ReRequest)
}

func TestRequest_SoloElSolicitanteEditaYEnRequested(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Regla", 5)
	require.NoError(t, err)
	req, err := e.request(itemID, 1, false)
	require.NoError(t, err)

	_, err = e.requests.UpdateMyRequest(e.ctx, caller(otherID), req.ID, dto.UpdateMySupplyRequest{Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	out, err := e.requests.UpdateMyRequest(e.ctx, caller(userID), req.ID, dto.UpdateMySupplyRequest{Quantity: 2, Purpose: "taller"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Quantity)

	_, err = e.setRequestStatus(req.ID, entity.RequestApproved)
	require.NoError(t, err)
	err = e.requests.Delete(e.ctx, caller(userID), req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus)
}

func TestRequest_AuditoriaPorTransicion(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Casco", 2)
	require.NoError(t, err)
	req, err := e.request(itemID, 1, false)
	require.NoError(t, err)
	_, err = e.setRequestStatus(req.ID, entity.RequestApproved)
	require.NoError(t, err)

	chase, err := e.requests.ListChase(e.ctx, caller(userID), req.ID)
	require.NoError(t, err)
	require.Len(t, chase, 1)
	assert.Equal(t, req.ID, chase[0].RequestID)
}

func TestRequest_ConteoPorEstadoIncluyeCeros(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Botas", 3)
	require.NoError(t, err)
	_, err = e.request(itemID, 1, false)
	require.NoError(t, err)

	counts, err := e.requests.CountByStatus(e.ctx, caller(managerID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[entity.RequestRequested])
	assert.Equal(t, int64(0), counts[entity.RequestReturned])
	assert.Len(t, counts, 5)
}

func TestRequest_NotificacionFallidaNoRevierteLaAprobacion(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Radio", 2)
	require.NoError(t, err)
	req, err := e.request(itemID, 2, false)
	require.NoError(t, err)

	e.notifier.fail = true
	out, err := e.setRequestStatus(req.ID, entity.RequestApproved)
	require.NoError(t, err, "un fallo del canal de notificaciones no debe propagarse")
	assert.Equal(t, entity.RequestApproved, out.Status)

	assert.Contains(t, e.notifier.kinds(), ports.EventSupplyRequestApproved)
	assert.Contains(t, e.notifier.kinds(), ports.EventStockShortage, "disponible 0 con mínimo 0 genera aviso de stock")
}

func TestRequest_AprobacionFallidaNoEmiteEventos(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Extintor", 2)
	require.NoError(t, err)
	a, err := e.request(itemID, 2, false)
	require.NoError(t, err)
	b, err := e.request(itemID, 2, false)
	require.NoError(t, err)
	_, err = e.setRequestStatus(a.ID, entity.RequestApproved)
	require.NoError(t, err)

	before := len(e.notifier.kinds())
	_, err = e.setRequestStatus(b.ID, entity.RequestApproved)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, e.notifier.kinds(), before)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones
// ──────────────────────────────────────────────────────────────────────────────

func lentRequest(t *testing.T, e *engine, qty int64) (string, *dto.SupplyRequestResponse) {
	t.Helper()
	itemID, err := e.purchase("Tablet", 5)
	require.NoError(t, err)
	req, err := e.request(itemID, qty, true)
	require.NoError(t, err)
	req, err = e.setRequestStatus(req.ID, entity.RequestApproved)
	require.NoError(t, err)
	return itemID, req
}

func TestReturn_IdaYVueltaRestauraUnidades(t *testing.T) {
	e := mustEngine(t)
	itemID, req := lentRequest(t, e, 2)

	ret, err := e.returns.Create(e.ctx, caller(userID), dto.CreateSupplyReturnRequest{SupplyRequestID: req.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnPending, ret.Status)
	assert.Equal(t, int64(2), ret.Quantity)

	ret, err = e.returns.UpdateStatus(e.ctx, caller(managerID), ret.ID, dto.UpdateStatusRequest{Status: entity.ReturnReturned, Image: "/uploads/ok.jpg"})
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnReturned, ret.Status)

	it, err := e.item(itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), it.AvailableQuantity)
	assert.GreaterOrEqual(t, it.TotalQuantity, it.AvailableQuantity)

	disp, err := e.dispositions(itemID)
	require.NoError(t, err)
	assert.Equal(t, 5, disp[entity.DispositionAvailable])
	assert.Zero(t, disp[entity.DispositionLend])

	got, err := e.requests.Get(e.ctx, caller(userID), req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestReturned, got.Status)

	rows, err := e.inboundRows(entity.InboundReturn)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ret.ID, rows[0].SupplyReturnID)
}

func TestReturn_SegundaDevolucionAbierta_Falla(t *testing.T) {
	e := mustEngine(t)
	_, req := lentRequest(t, e, 1)

	_, err := e.returns.Create(e.ctx, caller(userID), dto.CreateSupplyReturnRequest{SupplyRequestID: req.ID})
	require.NoError(t, err)
	_, err = e.returns.Create(e.ctx, caller(userID), dto.CreateSupplyReturnRequest{SupplyRequestID: req.ID})
	assert.ErrorIs(t, err, domain.ErrSupplyReturnExists)
}

func TestReturn_RechazoPermiteNuevaDevolucion(t *testing.T) {
	e := mustEngine(t)
	itemID, req := lentRequest(t, e, 1)

	ret, err := e.returns.Create(e.ctx, caller(userID), dto.CreateSupplyReturnRequest{SupplyRequestID: req.ID})
	require.NoError(t, err)
	ret, err = e.returns.UpdateStatus(e.ctx, caller(managerID), ret.ID, dto.UpdateStatusRequest{Status: entity.ReturnRejected})
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnRejected, ret.Status)

	rows, err := e.inboundRows(entity.InboundReturn)
	require.NoError(t, err)
	assert.Empty(t, rows, "un rechazo no registra entrada")
	it, err := e.item(itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), it.AvailableQuantity)

	_, err = e.returns.Create(e.ctx, caller(userID), dto.CreateSupplyReturnRequest{SupplyRequestID: req.ID})
	assert.NoError(t, err)
}

func TestReturn_DevolucionParcial_Falla(t *testing.T) {
	e := mustEngine(t)
	_, req := lentRequest(t, e, 2)
	_, err := e.returns.Create(e.ctx, caller(userID), dto.CreateSupplyReturnRequest{SupplyRequestID: req.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReturn_OtroUsuarioNoPuedeDevolver(t *testing.T) {
	e := mustEngine(t)
	_, req := lentRequest(t, e, 1)
	_, err := e.returns.Create(e.ctx, caller(otherID), dto.CreateSupplyReturnRequest{SupplyRequestID: req.ID})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestReturn_SolicitudNoPrestada_Falla(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Guante", 2)
	require.NoError(t, err)
	req, err := e.request(itemID, 1, true)
	require.NoError(t, err)

	_, err = e.returns.Create(e.ctx, caller(userID), dto.CreateSupplyReturnRequest{SupplyRequestID: req.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus, "aún no fue aprobada")
}

func TestReturn_DevueltaEsTerminal(t *testing.T) {
	e := mustEngine(t)
	_, req := lentRequest(t, e, 1)
	ret, err := e.returns.Create(e.ctx, caller(userID), dto.CreateSupplyReturnRequest{SupplyRequestID: req.ID})
	require.NoError(t, err)
	_, err = e.returns.UpdateStatus(e.ctx, caller(managerID), ret.ID, dto.UpdateStatusRequest{Status: entity.ReturnReturned})
	require.NoError(t, err)

	_, err = e.returns.UpdateStatus(e.ctx, caller(managerID), ret.ID, dto.UpdateStatusRequest{Status: entity.ReturnReturned})
	assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus)
	rows, err := e.inboundRows(entity.InboundReturn)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "la entrada RETURN se registra una sola vez")
}

func TestReturn_SolicitudMarcadaDevueltaDelegaEnLaDevolucion(t *testing.T) {
	e := mustEngine(t)
	itemID, req := lentRequest(t, e, 2)

	out, err := e.setRequestStatus(req.ID, entity.RequestReturned)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestReturned, out.Status)

	list, err := e.returns.List(e.ctx, caller(managerID), dto.LedgerQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.ReturnReturned, list[0].Status)

	it, err := e.item(itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), it.AvailableQuantity)
}

func TestReturn_PrestamosConEstadoDerivado(t *testing.T) {
	e := mustEngine(t)
	_, req := lentRequest(t, e, 1)

	lent, err := e.requests.ListLentItems(e.ctx, caller(userID), true)
	require.NoError(t, err)
	require.Len(t, lent, 1)
	assert.Equal(t, req.ID, lent[0].RequestID)
	assert.Equal(t, domaininv.RentRenting, lent[0].RentStatus)

	_, err = e.setRequestStatus(req.ID, entity.RequestReturned)
	require.NoError(t, err)
	lent, err = e.requests.ListLentItems(e.ctx, caller(userID), true)
	require.NoError(t, err)
	require.Len(t, lent, 1)
	assert.Equal(t, domaininv.RentReturned, lent[0].RentStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_DevuelveTodosLosLibrosEnOrdenCronologico(t *testing.T) {
	e := mustEngine(t)
	_, req := lentRequest(t, e, 1)
	_, err := e.setRequestStatus(req.ID, entity.RequestReturned)
	require.NoError(t, err)

	in, err := e.export.ListAllInbound(e.ctx, caller(managerID))
	require.NoError(t, err)
	require.Len(t, in, 2)
	assert.Equal(t, entity.InboundPurchase, in[0].Kind)
	assert.Equal(t, entity.InboundReturn, in[1].Kind)

	out, err := e.export.ListAllOutbound(e.ctx, caller(managerID))
	require.NoError(t, err)
	assert.Len(t, out, 1)

	reqs, err := e.export.ListAllRequests(e.ctx, caller(managerID))
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

	rets, err := e.export.ListAllReturns(e.ctx, caller(managerID))
	require.NoError(t, err)
	assert.Len(t, rets, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comprobantes
// ──────────────────────────────────────────────────────────────────────────────

type captureRenderer struct {
	last supply.RequestReceipt
}

func (r *captureRenderer) RenderRequestReceipt(_ context.Context, receipt supply.RequestReceipt) ([]byte, error) {
	r.last = receipt
	return []byte("%PDF-fake"), nil
}

func TestReceipt_ResuelveOrganizacionSolicitanteYSeguimiento(t *testing.T) {
	e := mustEngine(t)
	_, req := lentRequest(t, e, 1)
	renderer := &captureRenderer{}
	uc := supply.NewReceiptUseCase(e.requests, e.repos, renderer)

	out, name, err := uc.Download(e.ctx, caller(userID), req.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, "solicitud_"+req.ID+".pdf", name)
	assert.Equal(t, "Soporte", renderer.last.OrganizationName)
	assert.Equal(t, userID+"@test.local", renderer.last.RequesterEmail)
	assert.Len(t, renderer.last.Chase, 1, "una entrada por la aprobación")
}

func TestReceipt_SolicitudPendienteNoTieneComprobante(t *testing.T) {
	e := mustEngine(t)
	itemID, err := e.purchase("Cámara", 2)
	require.NoError(t, err)
	req, err := e.request(itemID, 1, false)
	require.NoError(t, err)

	_, _, err = supply.NewReceiptUseCase(e.requests, e.repos, &captureRenderer{}).Download(e.ctx, caller(userID), req.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidRequestStatus)
}

func TestReceipt_OtroUsuarioNoAccede(t *testing.T) {
	e := mustEngine(t)
	_, req := lentRequest(t, e, 1)
	uc := supply.NewReceiptUseCase(e.requests, e.repos, &captureRenderer{})

	_, _, err := uc.Download(e.ctx, caller(otherID), req.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, _, err = uc.Download(e.ctx, caller(managerID), req.ID)
	assert.NoError(t, err)
}
