package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/suministros-api/internal/application/ports"
)

// RegisterItemRequest body para POST /api/purchases (compra o reposición).
type RegisterItemRequest struct {
	Kind            string           `json:"kind"` // PURCHASE | RE_PURCHASE
	CategoryID      string           `json:"category_id"`
	Name            string           `json:"name"`
	Quantity        int64            `json:"quantity"`
	MinimumQuantity int64            `json:"minimum_quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	PurchaseDate    *time.Time       `json:"purchase_date,omitempty"`
	PurchaseSource  string           `json:"purchase_source,omitempty"`
	Location        string           `json:"location,omitempty"`
	Image           string           `json:"image,omitempty"`
	ReturnRequired  bool             `json:"return_required"`
	Evidence        *ports.Upload    `json:"-"`
}

// UpdateRegisterItemRequest body para PUT /api/purchases/:id. Quantity es la nueva cantidad total del registro.
type UpdateRegisterItemRequest struct {
	CategoryID     *string       `json:"category_id,omitempty"`
	Name           *string       `json:"name,omitempty"`
	Quantity       *int64        `json:"quantity,omitempty"`
	PurchaseSource *string       `json:"purchase_source,omitempty"`
	Location       *string       `json:"location,omitempty"`
	Image          *string       `json:"image,omitempty"`
	Evidence       *ports.Upload `json:"-"`
}

// RegisterItemResponse salida de un registro de compra.
type RegisterItemResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	ItemName       string          `json:"item_name"`
	SerialNumber   string          `json:"serial_number"`
	CategoryID     string          `json:"category_id"`
	InventoryInID  string          `json:"inventory_in_id"`
	Kind           string          `json:"kind"`
	Quantity       int64           `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	PurchaseDate   *time.Time      `json:"purchase_date,omitempty"`
	PurchaseSource string          `json:"purchase_source,omitempty"`
	Location       string          `json:"location,omitempty"`
	Image          string          `json:"image,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
