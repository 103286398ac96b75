package entity

import "time"

// Tipos de entrada al inventario.
const (
	InboundPurchase   = "PURCHASE"    // compra nueva
	InboundRePurchase = "RE_PURCHASE" // reposición de un artículo existente
	InboundReturn     = "RETURN"      // devolución de un préstamo
	InboundOther      = "OTHER"
)

// InventoryIn es una fila inmutable del libro de entradas.
type InventoryIn struct {
	ID             string
	OrganizationID string
	CategoryID     string
	ItemID         string
	SupplyReturnID string // solo para RETURN
	Quantity       int64
	Kind           string
	Image          string
	CreatedBy      string
	CreatedAt      time.Time
}

// IsValidInboundKind valida el enum de tipo de entrada.
func IsValidInboundKind(kind string) bool {
	switch kind {
	case InboundPurchase, InboundRePurchase, InboundReturn, InboundOther:
		return true
	}
	return false
}
