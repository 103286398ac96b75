package dto

import (
	"time"

	"github.com/jhoicas/suministros-api/internal/application/ports"
)

// CreateSupplyRequest body para POST /api/supply-requests.
type CreateSupplyRequest struct {
	ItemID     string     `json:"item_id"`
	Quantity   int64      `json:"quantity"`
	Purpose    string     `json:"purpose"`
	UseDate    *time.Time `json:"use_date,omitempty"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Rental     bool       `json:"rental"`
}

// UpdateMySupplyRequest body para PUT /api/supply-requests/:id (solo el solicitante, solo en REQUESTED).
type UpdateMySupplyRequest struct {
	Quantity   int64      `json:"quantity"`
	Purpose    string     `json:"purpose"`
	UseDate    *time.Time `json:"use_date,omitempty"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Rental     bool       `json:"rental"`
}

// UpdateStatusRequest body para cambiar el estado de una solicitud o devolución.
type UpdateStatusRequest struct {
	Status   string        `json:"status"`
	Image    string        `json:"image,omitempty"`
	Evidence *ports.Upload `json:"-"`
}

// SupplyRequestResponse salida de una solicitud.
type SupplyRequestResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	ItemID         string     `json:"item_id"`
	RequesterID    string     `json:"requester_id"`
	SerialNumber   string     `json:"serial_number"`
	ProductName    string     `json:"product_name"`
	Quantity       int64      `json:"quantity"`
	Purpose        string     `json:"purpose"`
	UseDate        time.Time  `json:"use_date"`
	ReturnDate     *time.Time `json:"return_date,omitempty"`
	Rental         bool       `json:"rental"`
	ReRequest      bool       `json:"re_request"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// LentItemResponse préstamo vigente o cerrado con su estado derivado.
type LentItemResponse struct {
	RequestID    string     `json:"request_id"`
	ItemID       string     `json:"item_id"`
	ProductName  string     `json:"product_name"`
	SerialNumber string     `json:"serial_number"`
	RequesterID  string     `json:"requester_id"`
	Quantity     int64      `json:"quantity"`
	UseDate      time.Time  `json:"use_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
	RentStatus   string     `json:"rent_status"` // RENTING | OVERDUE | RETURNED
}

// ChaseItemResponse entrada de auditoría de una solicitud.
type ChaseItemResponse struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	Issue       string    `json:"issue"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSupplyReturnRequest body para POST /api/supply-returns.
type CreateSupplyReturnRequest struct {
	SupplyRequestID string        `json:"supply_request_id"`
	Quantity        int64         `json:"quantity"`
	ReturnDate      *time.Time    `json:"return_date,omitempty"`
	Condition       string        `json:"condition,omitempty"` // AVAILABLE | DAMAGED | LOST
	Image           string        `json:"image,omitempty"`
	Evidence        *ports.Upload `json:"-"`
}

// SupplyReturnResponse salida de una devolución.
type SupplyReturnResponse struct {
	ID              string    `json:"id"`
	SupplyRequestID string    `json:"supply_request_id"`
	RequesterID     string    `json:"requester_id"`
	OrganizationID  string    `json:"organization_id"`
	ItemID          string    `json:"item_id"`
	SerialNumber    string    `json:"serial_number"`
	ProductName     string    `json:"product_name"`
	Quantity        int64     `json:"quantity"`
	UseDate         time.Time `json:"use_date"`
	ReturnDate      time.Time `json:"return_date"`
	Status          string    `json:"status"`
	Condition       string    `json:"condition"`
	Image           string    `json:"image,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
