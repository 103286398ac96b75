package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// NewRepositories ata todos los repositorios a un mismo Querier (pool o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Items:         NewItemRepository(q),
		Instances:     NewItemInstanceRepository(q),
		Inbound:       NewInventoryInRepository(q),
		Outbound:      NewInventoryOutRepository(q),
		Requests:      NewSupplyRequestRepository(q),
		Returns:       NewSupplyReturnRepository(q),
		Chase:         NewChaseItemRepository(q),
		Registers:     NewRegisterItemRepository(q),
		Categories:    NewCategoryRepository(q),
		Organizations: NewOrganizationRepository(q),
		Users:         NewUserRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
