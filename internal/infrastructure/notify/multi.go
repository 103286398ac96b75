package notify

import (
	"context"
	"errors"

	"github.com/jhoicas/suministros-api/internal/application/ports"
)

// Multi reparte cada evento entre varios notificadores. Intenta todos y agrega los errores.
type Multi []ports.Notifier

// Notify implementa ports.Notifier.
func (m Multi) Notify(ctx context.Context, event ports.Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
