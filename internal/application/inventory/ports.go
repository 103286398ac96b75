package inventory

import (
	"context"

	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: si fn devuelve error no queda estado parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
