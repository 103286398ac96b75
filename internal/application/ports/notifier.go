package ports

import (
	"context"
	"time"

	"github.com/jhoicas/suministros-api/pkg/logger"
)

// Tipos de evento que el motor emite hacia el subsistema de notificaciones.
const (
	EventStockShortage         = "STOCK_SHORTAGE"
	EventSupplyRequestCreated  = "SUPPLY_REQUEST_CREATED"
	EventSupplyRequestApproved = "SUPPLY_REQUEST_APPROVED"
	EventSupplyRequestRejected = "SUPPLY_REQUEST_REJECTED"
	EventSupplyReturnCreated   = "SUPPLY_RETURN_CREATED"
	EventSupplyReturnApproved  = "SUPPLY_RETURN_APPROVED"
	EventSupplyReturnRejected  = "SUPPLY_RETURN_REJECTED"
)

// Event señal de ciclo de vida con datos suficientes para que el receptor arme el mensaje.
type Event struct {
	Kind           string    `json:"kind"`
	OrganizationID string    `json:"organization_id"`
	RecipientID    string    `json:"recipient_id,omitempty"` // vacío = gestores de la organización
	ItemID         string    `json:"item_id,omitempty"`
	ItemName       string    `json:"item_name,omitempty"`
	SerialNumber   string    `json:"serial_number,omitempty"`
	RequestID      string    `json:"request_id,omitempty"`
	ReturnID       string    `json:"return_id,omitempty"`
	Quantity       int64     `json:"quantity,omitempty"`
	Current        int64     `json:"current,omitempty"`
	Minimum        int64     `json:"minimum,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Notifier puerto de salida hacia el subsistema de notificaciones (fire-and-forget).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Outbox acumula eventos durante una transacción; se publican solo después del Commit.
type Outbox struct {
	events []Event
}

// Add encola un evento.
func (o *Outbox) Add(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	o.events = append(o.events, e)
}

// Events devuelve los eventos encolados.
func (o *Outbox) Events() []Event {
	return o.events
}

// Publish envía los eventos del outbox. Los fallos se registran y nunca se propagan:
// la transacción que los originó ya fue confirmada.
func Publish(ctx context.Context, n Notifier, log *logger.Logger, box *Outbox) {
	if n == nil || box == nil {
		return
	}
	for _, e := range box.events {
		if err := n.Notify(ctx, e); err != nil {
			log.Warn().Err(err).
				Str("event", e.Kind).
				Str("item_id", e.ItemID).
				Str("request_id", e.RequestID).
				Msg("no se pudo emitir la notificación")
		}
	}
}
