package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var _ repository.ItemInstanceRepository = (*ItemInstanceRepo)(nil)

const instanceColumns = `id, seq, item_id, instance_code, disposition, status, image, final_image,
	borrower_id, supply_request_id, created_at, updated_at`

// ItemInstanceRepo implementación de ItemInstanceRepository sobre PostgreSQL.
type ItemInstanceRepo struct {
	q Querier
}

// NewItemInstanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemInstanceRepository(q Querier) *ItemInstanceRepo {
	return &ItemInstanceRepo{q: q}
}

func scanInstance(row pgx.Row) (*entity.ItemInstance, error) {
	var i entity.ItemInstance
	var borrowerID, requestID *string
	if err := row.Scan(
		&i.ID, &i.Seq, &i.ItemID, &i.InstanceCode, &i.Disposition, &i.Status, &i.Image, &i.FinalImage,
		&borrowerID, &requestID, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, err
	}
	i.BorrowerID = deref(borrowerID)
	i.SupplyRequestID = deref(requestID)
	return &i, nil
}

func (r *ItemInstanceRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.ItemInstance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.ItemInstance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item instance: %w", err)
		}
		list = append(list, inst)
	}
	return list, rows.Err()
}

// CreateBatch inserta las unidades en un solo batch y asigna Seq desde la secuencia.
func (r *ItemInstanceRepo) CreateBatch(ctx context.Context, instances []*entity.ItemInstance) error {
	if len(instances) == 0 {
		return nil
	}
	query := `
		INSERT INTO item_instances (id, item_id, instance_code, disposition, status, image, final_image,
			borrower_id, supply_request_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq`
	batch := &pgx.Batch{}
	for _, inst := range instances {
		batch.Queue(query,
			inst.ID, inst.ItemID, inst.InstanceCode, inst.Disposition, inst.Status, inst.Image, inst.FinalImage,
			nullable(inst.BorrowerID), nullable(inst.SupplyRequestID), inst.CreatedAt, inst.UpdatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, inst := range instances {
		if err := br.QueryRow().Scan(&inst.Seq); err != nil {
			return fmt.Errorf("insert item instance: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *ItemInstanceRepo) GetByID(ctx context.Context, id string) (*entity.ItemInstance, error) {
	inst, err := scanInstance(r.q.QueryRow(ctx, `SELECT `+instanceColumns+` FROM item_instances WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item instance: %w", err)
	}
	return inst, nil
}

// SelectOldestActive bloquea y devuelve la unidad ACTIVE más antigua con esa disposición.
func (r *ItemInstanceRepo) SelectOldestActive(ctx context.Context, itemID, disposition string) (*entity.ItemInstance, error) {
	query := `SELECT ` + instanceColumns + ` FROM item_instances
		WHERE item_id = $1 AND disposition = $2 AND status = 'ACTIVE'
		ORDER BY created_at, seq
		LIMIT 1
		FOR UPDATE`
	inst, err := scanInstance(r.q.QueryRow(ctx, query, itemID, disposition))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select oldest item instance: %w", err)
	}
	return inst, nil
}

// ListNewestActive bloquea y devuelve las n unidades disponibles más recientes.
func (r *ItemInstanceRepo) ListNewestActive(ctx context.Context, itemID string, n int) ([]*entity.ItemInstance, error) {
	query := `SELECT ` + instanceColumns + ` FROM item_instances
		WHERE item_id = $1 AND disposition = 'AVAILABLE' AND status = 'ACTIVE'
		ORDER BY created_at DESC, seq DESC
		LIMIT $2
		FOR UPDATE`
	return r.list(ctx, "list newest item instances", query, itemID, n)
}

// Update persiste disposición, estado, imágenes y referencias de préstamo.
func (r *ItemInstanceRepo) Update(ctx context.Context, inst *entity.ItemInstance) error {
	query := `
		UPDATE item_instances SET disposition = $2, status = $3, image = $4, final_image = $5,
			borrower_id = $6, supply_request_id = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		inst.ID, inst.Disposition, inst.Status, inst.Image, inst.FinalImage,
		nullable(inst.BorrowerID), nullable(inst.SupplyRequestID), inst.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item instance: %w", err)
	}
	return nil
}

// StopAllActive detiene todas las unidades ACTIVE del artículo y devuelve cuántas cambió.
func (r *ItemInstanceRepo) StopAllActive(ctx context.Context, itemID string, at time.Time) (int64, error) {
	query := `
		UPDATE item_instances SET disposition = 'STOPPED', status = 'STOPPED', borrower_id = NULL,
			supply_request_id = NULL, updated_at = $2
		WHERE item_id = $1 AND status = 'ACTIVE'`
	tag, err := r.q.Exec(ctx, query, itemID, at)
	if err != nil {
		return 0, fmt.Errorf("stop item instances: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByItem lista todas las unidades del artículo en orden FIFO.
func (r *ItemInstanceRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.ItemInstance, error) {
	query := `SELECT ` + instanceColumns + ` FROM item_instances WHERE item_id = $1 ORDER BY created_at, seq`
	return r.list(ctx, "list item instances", query, itemID)
}
