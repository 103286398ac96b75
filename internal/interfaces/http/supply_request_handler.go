package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/supply"
)

// SupplyRequestHandler maneja el ciclo de vida de las solicitudes de suministro.
type SupplyRequestHandler struct {
	uc       *supply.RequestUseCase
	receipts *supply.ReceiptUseCase
}

// NewSupplyRequestHandler construye el handler.
func NewSupplyRequestHandler(uc *supply.RequestUseCase, receipts *supply.ReceiptUseCase) *SupplyRequestHandler {
	return &SupplyRequestHandler{uc: uc, receipts: receipts}
}

// Create godoc
// @Summary      Crear solicitud de suministro
// @Description  Un préstamo (rental) exige return_date posterior a use_date.
// @Tags         supply-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyRequest  true  "item_id, quantity, purpose, use_date, return_date, rental"
// @Success      201   {object}  dto.SupplyRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supply-requests [post]
func (h *SupplyRequestHandler) Create(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), caller, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una solicitud
// @Description  APPROVED registra la salida y descuenta stock; RETURNED delega en el flujo de devolución.
// @Tags         supply-requests
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        id    path  string                   true  "ID de la solicitud"
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  dto.SupplyRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supply-requests/{id}/status [patch]
func (h *SupplyRequestHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdateStatusRequest
	upload, err := bindWithEvidence(c, &in)
	if err != nil {
		return invalidBody(c)
	}
	in.Evidence = upload
	out, err := h.uc.UpdateStatus(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateMine godoc
// @Summary      Editar mi solicitud
// @Description  Solo el solicitante y solo mientras siga en REQUESTED.
// @Tags         supply-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la solicitud"
// @Param        body  body  dto.UpdateMySupplyRequest  true  "quantity, purpose, fechas"
// @Success      200   {object}  dto.SupplyRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/supply-requests/{id} [put]
func (h *SupplyRequestHandler) UpdateMine(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdateMySupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateMyRequest(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar mi solicitud
// @Tags         supply-requests
// @Security     Bearer
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/supply-requests/{id} [delete]
func (h *SupplyRequestHandler) Delete(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), caller, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get godoc
// @Summary      Obtener solicitud
// @Tags         supply-requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.SupplyRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supply-requests/{id} [get]
func (h *SupplyRequestHandler) Get(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), caller, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar solicitudes de la organización
// @Tags         supply-requests
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "estado"
// @Param        from    query  string  false  "desde"
// @Param        to      query  string  false  "hasta"
// @Param        limit   query  int     false  "límite"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.SupplyRequestResponse
// @Router       /api/supply-requests [get]
func (h *SupplyRequestHandler) List(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	q, err := ledgerQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.Context(), caller, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Mis solicitudes
// @Tags         supply-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplyRequestResponse
// @Router       /api/supply-requests/me [get]
func (h *SupplyRequestHandler) ListMine(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	q, err := ledgerQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.ListMine(c.Context(), caller, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CountByStatus godoc
// @Summary      Conteo de solicitudes por estado
// @Tags         supply-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/supply-requests/summary [get]
func (h *SupplyRequestHandler) CountByStatus(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.CountByStatus(c.Context(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Lent godoc
// @Summary      Préstamos
// @Description  Préstamos con su estado derivado (vigente, vencido, devuelto). mine=true filtra por el usuario actual.
// @Tags         supply-requests
// @Security     Bearer
// @Produce      json
// @Param        mine  query  bool  false  "solo los míos"
// @Success      200  {array}  dto.LentItemResponse
// @Router       /api/supply-requests/lent [get]
func (h *SupplyRequestHandler) Lent(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ListLentItems(c.Context(), caller, c.QueryBool("mine", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Chase godoc
// @Summary      Historial de seguimiento de una solicitud
// @Tags         supply-requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {array}  dto.ChaseItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supply-requests/{id}/chase [get]
func (h *SupplyRequestHandler) Chase(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ListChase(c.Context(), caller, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar comprobante PDF de una solicitud
// @Description  Disponible cuando la solicitud ya fue aprobada o rechazada.
// @Tags         supply-requests
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supply-requests/{id}/receipt [get]
func (h *SupplyRequestHandler) Receipt(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	pdfBytes, filename, err := h.receipts.Download(c.Context(), caller, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
