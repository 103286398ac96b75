package entity

import "time"

// Tipos de salida del inventario.
const (
	OutboundIssue     = "ISSUE"     // entrega definitiva (consumo)
	OutboundLend      = "LEND"      // préstamo con devolución
	OutboundAvailable = "AVAILABLE" // marcador interno
)

// InventoryOut es una fila inmutable del libro de salidas.
type InventoryOut struct {
	ID              string
	OrganizationID  string
	CategoryID      string
	ItemID          string
	SupplyRequestID string
	RequesterID     string
	Quantity        int64
	Kind            string
	CreatedBy       string
	CreatedAt       time.Time
}
