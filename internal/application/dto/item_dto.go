package dto

import "time"

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	CategoryID      string `json:"category_id"`
	Name            string `json:"name"`
	Image           string `json:"image,omitempty"`
	MinimumQuantity int64  `json:"minimum_quantity"`
	PurchaseSource  string `json:"purchase_source,omitempty"`
	Location        string `json:"location,omitempty"`
	ReturnRequired  bool   `json:"return_required"`
}

// UpdateItemRequest body para PUT /api/items/:id (campos opcionales).
type UpdateItemRequest struct {
	CategoryID      *string `json:"category_id,omitempty"`
	Name            *string `json:"name,omitempty"`
	Image           *string `json:"image,omitempty"`
	MinimumQuantity *int64  `json:"minimum_quantity,omitempty"`
	Location        *string `json:"location,omitempty"`
	ReturnRequired  *bool   `json:"return_required,omitempty"`
}

// ItemResponse salida de un artículo con sus contadores.
type ItemResponse struct {
	ID                string     `json:"id"`
	OrganizationID    string     `json:"organization_id"`
	CategoryID        string     `json:"category_id"`
	Name              string     `json:"name"`
	SerialNumber      string     `json:"serial_number"`
	Image             string     `json:"image,omitempty"`
	MinimumQuantity   int64      `json:"minimum_quantity"`
	TotalQuantity     int64      `json:"total_quantity"`
	AvailableQuantity int64      `json:"available_quantity"`
	PurchaseDate      *time.Time `json:"purchase_date,omitempty"`
	PurchaseSource    string     `json:"purchase_source,omitempty"`
	Location          string     `json:"location,omitempty"`
	ReturnRequired    bool       `json:"return_required"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ItemInstanceResponse salida de una unidad individual.
type ItemInstanceResponse struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"item_id"`
	InstanceCode    string    `json:"instance_code"`
	Disposition     string    `json:"disposition"`
	Status          string    `json:"status"`
	Image           string    `json:"image,omitempty"`
	FinalImage      string    `json:"final_image,omitempty"`
	BorrowerID      string    `json:"borrower_id,omitempty"`
	SupplyRequestID string    `json:"supply_request_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ItemUsageResponse artículo con su frecuencia de salidas.
type ItemUsageResponse struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Count    int64  `json:"count"`
	Quantity int64  `json:"quantity"`
}
