package dto

import (
	"time"

	"github.com/jhoicas/suministros-api/internal/application/ports"
)

// InboundRequest body para una entrada manual (tipo OTHER).
type InboundRequest struct {
	ItemID   string        `json:"item_id"`
	Quantity int64         `json:"quantity"`
	Kind     string        `json:"kind"`
	Image    string        `json:"image,omitempty"`
	Evidence *ports.Upload `json:"-"`
}

// InboundResponse fila del libro de entradas con nombres desnormalizados.
type InboundResponse struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"item_id"`
	ItemName       string    `json:"item_name"`
	CategoryName   string    `json:"category_name"`
	SupplyReturnID string    `json:"supply_return_id,omitempty"`
	Quantity       int64     `json:"quantity"`
	Kind           string    `json:"kind"`
	Image          string    `json:"image,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// OutboundResponse fila del libro de salidas con nombres desnormalizados.
type OutboundResponse struct {
	ID              string    `json:"id"`
	SupplyRequestID string    `json:"supply_request_id"`
	ItemID          string    `json:"item_id"`
	ItemName        string    `json:"item_name"`
	CategoryName    string    `json:"category_name"`
	RequesterID     string    `json:"requester_id"`
	Quantity        int64     `json:"quantity"`
	Kind            string    `json:"kind"`
	CreatedAt       time.Time `json:"created_at"`
}

// LedgerQuery filtros de listado (query string).
type LedgerQuery struct {
	ItemID string     `query:"item_id"`
	Kind   string     `query:"kind"`
	Status string     `query:"status"`
	Search string     `query:"search"`
	From   *time.Time `query:"-"`
	To     *time.Time `query:"-"`
	Sort   string     `query:"sort"` // asc | desc
	Limit  int        `query:"limit"`
	Offset int        `query:"offset"`
}
