package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden importa: los errores específicos antes que los genéricos.
var errorTable = []errorMapping{
	{domain.ErrItemNotFound, fiber.StatusNotFound, "ITEM_NOT_FOUND"},
	{domain.ErrItemInstanceNotFound, fiber.StatusNotFound, "ITEM_INSTANCE_NOT_FOUND"},
	{domain.ErrSupplyRequestNotFound, fiber.StatusNotFound, "SUPPLY_REQUEST_NOT_FOUND"},
	{domain.ErrSupplyReturnNotFound, fiber.StatusNotFound, "SUPPLY_RETURN_NOT_FOUND"},
	{domain.ErrRegisterItemNotFound, fiber.StatusNotFound, "REGISTER_ITEM_NOT_FOUND"},
	{domain.ErrCategoryNotFound, fiber.StatusNotFound, "CATEGORY_NOT_FOUND"},
	{domain.ErrOrganizationNotFound, fiber.StatusNotFound, "MANAGEMENT_DASHBOARD_NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrSupplyReturnExists, fiber.StatusConflict, "SUPPLY_RETURN_ALREADY_EXISTS"},
	{domain.ErrItemNameExists, fiber.StatusConflict, "ITEM_NAME_EXISTS"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrInvalidRequestStatus, fiber.StatusBadRequest, "INVALID_REQUEST_STATUS"},
	{domain.ErrInvalidReturnDate, fiber.StatusBadRequest, "INVALID_RETURN_DATE"},
	{domain.ErrInvalidInboundType, fiber.StatusBadRequest, "INVALID_INBOUND_TYPE"},
	{domain.ErrAccessDenied, fiber.StatusForbidden, "ACCESS_DENIED"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// writeError traduce un error de dominio a la respuesta HTTP correspondiente.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
}
