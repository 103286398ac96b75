package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterItem registro de compra que enlaza el Item con la entrada que lo originó.
type RegisterItem struct {
	ID             string
	OrganizationID string
	CategoryID     string
	ItemID         string
	InventoryInID  string
	Image          string
	Quantity       int64
	UnitCost       decimal.Decimal
	TotalCost      decimal.Decimal
	PurchaseDate   *time.Time
	PurchaseSource string
	Location       string
	Kind           string // PURCHASE | RE_PURCHASE
	Status         string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
