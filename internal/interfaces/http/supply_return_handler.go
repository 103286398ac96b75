package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/supply"
)

// SupplyReturnHandler maneja las devoluciones de préstamos.
type SupplyReturnHandler struct {
	uc *supply.ReturnUseCase
}

// NewSupplyReturnHandler construye el handler.
func NewSupplyReturnHandler(uc *supply.ReturnUseCase) *SupplyReturnHandler {
	return &SupplyReturnHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar devolución
// @Description  La solicitud debe ser un préstamo en RETURN_PENDING. Acepta multipart con "payload" y "evidence".
// @Tags         supply-returns
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body  body  dto.CreateSupplyReturnRequest  true  "supply_request_id, quantity, return_date, condition"
// @Success      201   {object}  dto.SupplyReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/supply-returns [post]
func (h *SupplyReturnHandler) Create(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateSupplyReturnRequest
	upload, err := bindWithEvidence(c, &in)
	if err != nil {
		return invalidBody(c)
	}
	in.Evidence = upload
	out, err := h.uc.Create(c.Context(), caller, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar devolución
// @Description  RETURNED registra la entrada de tipo RETURN y cierra la solicitud; REJECTED no mueve stock.
// @Tags         supply-returns
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        id    path  string                   true  "ID de la devolución"
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  dto.SupplyReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/supply-returns/{id}/status [patch]
func (h *SupplyReturnHandler) UpdateStatus(c *fiber.Ctx) error {
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

// Get godoc
// @Summary      Obtener devolución
// @Tags         supply-returns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.SupplyReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/supply-returns/{id} [get]
func (h *SupplyReturnHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Listar devoluciones
// @Tags         supply-returns
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "estado"
// @Param        limit   query  int     false  "límite"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.SupplyReturnResponse
// @Router       /api/supply-returns [get]
func (h *SupplyReturnHandler) List(c *fiber.Ctx) error {
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
