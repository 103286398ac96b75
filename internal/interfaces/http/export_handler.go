package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suministros-api/internal/application/supply"
)

// ExportHandler entrega los libros completos para generar hojas de cálculo en el cliente.
type ExportHandler struct {
	uc *supply.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *supply.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar un libro completo
// @Tags         export
// @Security     Bearer
// @Produce      json
// @Param        ledger  path  string  true  "inbound | outbound | requests | returns"
// @Success      200  {array}  object
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/export/{ledger} [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	ctx := c.Context()
	var (
		out interface{}
		err error
	)
	switch c.Params("ledger") {
	case "inbound":
		out, err = h.uc.ListAllInbound(ctx, caller)
	case "outbound":
		out, err = h.uc.ListAllOutbound(ctx, caller)
	case "requests":
		out, err = h.uc.ListAllRequests(ctx, caller)
	case "returns":
		out, err = h.uc.ListAllReturns(ctx, caller)
	default:
		return fiber.ErrNotFound
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
