package inventory

import "time"

// Estado de un préstamo visto desde el listado de artículos prestados.
const (
	RentRenting  = "RENTING"
	RentOverdue  = "OVERDUE"
	RentReturned = "RETURNED"
)

// RentStatus deriva el estado del préstamo a partir de la fecha de devolución pactada.
func RentStatus(returned bool, returnDate *time.Time, now time.Time) string {
	if returned {
		return RentReturned
	}
	if returnDate != nil && now.After(*returnDate) {
		return RentOverdue
	}
	return RentRenting
}
