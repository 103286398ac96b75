package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores del motor de suministros. Cada uno tiene un código estable que expone la capa HTTP.
var (
	ErrItemNotFound          = errors.New("no se encontró el artículo")
	ErrItemInstanceNotFound  = errors.New("la unidad individual no existe")
	ErrItemNameExists        = errors.New("ya existe un artículo con el mismo nombre")
	ErrSupplyRequestNotFound = errors.New("no se encontró la solicitud de suministro")
	ErrSupplyReturnNotFound  = errors.New("no se encontró la devolución de suministro")
	ErrSupplyReturnExists    = errors.New("la solicitud ya tiene una devolución registrada")
	ErrRegisterItemNotFound  = errors.New("no se encontró el registro de compra")
	ErrCategoryNotFound      = errors.New("no se encontró la categoría")
	ErrOrganizationNotFound  = errors.New("el panel de gestión no existe")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInvalidRequestStatus  = errors.New("el estado de la solicitud no permite esta operación")
	ErrInvalidReturnDate     = errors.New("un préstamo requiere fecha de devolución válida")
	ErrInvalidInboundType    = errors.New("tipo de entrada no válido")
	ErrAccessDenied          = errors.New("no tiene permiso sobre este recurso")
)
