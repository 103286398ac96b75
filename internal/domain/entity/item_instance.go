package entity

import "time"

// Disposición (uso actual) de una unidad individual.
const (
	DispositionAvailable = "AVAILABLE"
	DispositionLend      = "LEND"
	DispositionStopped   = "STOPPED"
)

// ItemInstance representa una unidad física rastreada de un Item.
// Seq es la secuencia de inserción que desempata el orden FIFO cuando CreatedAt coincide.
type ItemInstance struct {
	ID              string
	ItemID          string
	InstanceCode    string
	Disposition     string
	Status          string
	Image           string
	FinalImage      string
	BorrowerID      string
	SupplyRequestID string
	Seq             int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsValidDisposition valida el enum de disposición.
func IsValidDisposition(d string) bool {
	switch d {
	case DispositionAvailable, DispositionLend, DispositionStopped:
		return true
	}
	return false
}
