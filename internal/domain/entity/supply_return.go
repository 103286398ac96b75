package entity

import "time"

// Estados de una devolución.
const (
	ReturnPending  = "RETURN_PENDING"
	ReturnReturned = "RETURNED"
	ReturnRejected = "REJECTED"
)

// Condición declarada del bien devuelto.
const (
	ConditionAvailable = "AVAILABLE"
	ConditionDamaged   = "DAMAGED"
	ConditionLost      = "LOST"
)

// SupplyReturn cierra una solicitud de préstamo. Al pasar a RETURNED genera exactamente una entrada RETURN.
type SupplyReturn struct {
	ID              string
	SupplyRequestID string
	RequesterID     string
	OrganizationID  string
	ItemID          string
	SerialNumber    string
	ProductName     string
	Quantity        int64
	UseDate         time.Time
	ReturnDate      time.Time
	Status          string
	Condition       string
	Image           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsValidCondition valida la clasificación de daño o pérdida.
func IsValidCondition(c string) bool {
	switch c {
	case ConditionAvailable, ConditionDamaged, ConditionLost:
		return true
	}
	return false
}
