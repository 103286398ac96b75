package entity

import "time"

// Estados de aprobación de una solicitud de suministro.
const (
	RequestRequested     = "REQUESTED"
	RequestApproved      = "APPROVED"
	RequestRejected      = "REJECTED"
	RequestReturnPending = "RETURN_PENDING"
	RequestReturned      = "RETURNED"
)

// SupplyRequest solicitud de un usuario para usar o pedir prestada una cantidad de un Item.
type SupplyRequest struct {
	ID             string
	OrganizationID string
	ItemID         string
	RequesterID    string
	SerialNumber   string
	ProductName    string
	Quantity       int64
	Purpose        string
	UseDate        time.Time
	ReturnDate     *time.Time
	Rental         bool
	ReRequest      bool
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsTerminal indica si la solicitud ya no admite cambios de estado.
func (r *SupplyRequest) IsTerminal() bool {
	switch r.Status {
	case RequestRejected, RequestReturned:
		return true
	case RequestApproved:
		return !r.Rental
	}
	return false
}
