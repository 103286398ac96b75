package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
)

// PurchaseHandler maneja los registros de compra y reposición.
type PurchaseHandler struct {
	uc *inventory.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *inventory.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar compra o reposición
// @Description  PURCHASE crea el artículo si no existe; RE_PURCHASE exige que exista. Acepta multipart con "payload" (JSON) y "evidence" (imagen).
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body  body  dto.RegisterItemRequest  true  "kind, category_id, name, quantity, unit_cost"
// @Success      201   {object}  dto.RegisterItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Register(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.RegisterItemRequest
	upload, err := bindWithEvidence(c, &in)
	if err != nil {
		return invalidBody(c)
	}
	in.Evidence = upload
	out, err := h.uc.Register(c.Context(), caller, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Corregir registro de compra
// @Description  Si cambia la cantidad se aplica la diferencia sobre el artículo y sus unidades.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        id    path  string                         true  "ID del registro"
// @Param        body  body  dto.UpdateRegisterItemRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.RegisterItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdateRegisterItemRequest
	upload, err := bindWithEvidence(c, &in)
	if err != nil {
		return invalidBody(c)
	}
	in.Evidence = upload
	out, err := h.uc.Update(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Anular registro de compra
// @Tags         purchases
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Obtener registro de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.RegisterItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Listar registros de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "límite"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.RegisterItemResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.Context(), caller, pageQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
