package entity

import (
	"time"

	"github.com/jhoicas/suministros-api/internal/domain"
)

// Estado de ciclo de vida compartido por artículos, unidades y registros de compra.
const (
	StatusActive  = "ACTIVE"
	StatusStopped = "STOPPED"
)

// Item representa un tipo de activo con contadores agregados dentro de una organización.
// Invariante: 0 <= AvailableQuantity <= TotalQuantity.
type Item struct {
	ID                string
	OrganizationID    string
	CategoryID        string
	Name              string
	SerialNumber      string
	Image             string
	MinimumQuantity   int64
	TotalQuantity     int64
	AvailableQuantity int64
	PurchaseDate      *time.Time
	PurchaseSource    string
	Location          string
	ReturnRequired    bool
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsActive indica si el artículo no ha sido dado de baja.
func (i *Item) IsActive() bool {
	return i != nil && i.Status == StatusActive
}

// Adjust aplica deltas con signo a los contadores. Es el único punto de cambio de cantidades:
// el llamador debe tener la fila bloqueada y persistir el resultado en la misma transacción.
func (i *Item) Adjust(deltaTotal, deltaAvailable int64) error {
	total := i.TotalQuantity + deltaTotal
	available := i.AvailableQuantity + deltaAvailable
	if total < 0 || available < 0 || available > total {
		return domain.ErrInsufficientStock
	}
	i.TotalQuantity = total
	i.AvailableQuantity = available
	return nil
}

// BelowMinimum indica si el disponible quedó en o por debajo del mínimo configurado.
func (i *Item) BelowMinimum() bool {
	return i.AvailableQuantity <= i.MinimumQuantity
}
