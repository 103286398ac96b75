package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
)

// InventoryHandler expone los libros de entradas y salidas.
type InventoryHandler struct {
	inbound  *inventory.InboundLedger
	outbound *inventory.OutboundLedger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(inbound *inventory.InboundLedger, outbound *inventory.OutboundLedger) *InventoryHandler {
	return &InventoryHandler{inbound: inbound, outbound: outbound}
}

// RecordInbound godoc
// @Summary      Registrar entrada manual
// @Description  Solo acepta kind OTHER; compras y devoluciones generan su entrada en su propio flujo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body  body  dto.InboundRequest  true  "item_id, quantity, kind"
// @Success      201   {object}  dto.InboundResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/in [post]
func (h *InventoryHandler) RecordInbound(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.InboundRequest
	upload, err := bindWithEvidence(c, &in)
	if err != nil {
		return invalidBody(c)
	}
	in.Evidence = upload
	out, err := h.inbound.RecordInbound(c.Context(), caller, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInbound godoc
// @Summary      Libro de entradas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "artículo"
// @Param        kind     query  string  false  "PURCHASE | RE_PURCHASE | RETURN | OTHER"
// @Param        search   query  string  false  "texto en nombre del artículo"
// @Param        from     query  string  false  "desde (RFC3339 o YYYY-MM-DD)"
// @Param        to       query  string  false  "hasta (RFC3339 o YYYY-MM-DD)"
// @Param        sort     query  string  false  "asc | desc"
// @Param        limit    query  int     false  "límite"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.InboundResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/in [get]
func (h *InventoryHandler) ListInbound(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	q, err := ledgerQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.inbound.ListInbound(c.Context(), caller, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListOutbound godoc
// @Summary      Libro de salidas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "artículo"
// @Param        kind     query  string  false  "CONSUME | LEND"
// @Param        from     query  string  false  "desde"
// @Param        to       query  string  false  "hasta"
// @Param        limit    query  int     false  "límite"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.OutboundResponse
// @Router       /api/inventory/out [get]
func (h *InventoryHandler) ListOutbound(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	q, err := ledgerQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.outbound.ListOutbound(c.Context(), caller, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMyOutbound godoc
// @Summary      Mis salidas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OutboundResponse
// @Router       /api/inventory/out/me [get]
func (h *InventoryHandler) ListMyOutbound(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	q, err := ledgerQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.outbound.ListMyOutbound(c.Context(), caller, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
