package notify

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier registra cada evento como JSON en el log. Es el destino por defecto sin webhook.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("notify")}
}

// Notify escribe el evento en el log.
func (n *LogNotifier) Notify(_ context.Context, event ports.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: serializar evento: %w", err)
	}
	n.log.Info().Str("kind", event.Kind).RawJSON("event", payload).Msg("notificación emitida")
	return nil
}
