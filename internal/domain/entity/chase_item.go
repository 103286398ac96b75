package entity

import "time"

// ChaseItem entrada de auditoría por cada cambio de estado de una solicitud.
type ChaseItem struct {
	ID              string
	SupplyRequestID string
	ProductName     string
	Quantity        int64
	Issue           string
	CreatedAt       time.Time
}
