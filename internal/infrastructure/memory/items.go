package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository         = (*itemRepo)(nil)
	_ repository.ItemInstanceRepository = (*instanceRepo)(nil)
)

type itemRepo struct{ v *view }

func (r *itemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.items[item.ID]; ok {
			return domain.ErrConflict
		}
		for _, other := range d.items {
			if other.SerialNumber == item.SerialNumber {
				return domain.ErrConflict
			}
		}
		d.items[item.ID] = *item
		return nil
	})
}

func (r *itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	r.v.read(func(d *state) {
		if item, ok := d.items[id]; ok {
			out = &item
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: las transacciones ya están serializadas.
func (r *itemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepo) GetActiveByName(_ context.Context, organizationID, name string) (*entity.Item, error) {
	var out *entity.Item
	r.v.read(func(d *state) {
		for _, item := range d.items {
			if item.OrganizationID != organizationID || item.Status != entity.StatusActive ||
				!strings.EqualFold(item.Name, name) {
				continue
			}
			if out == nil || item.CreatedAt.Before(out.CreatedAt) {
				found := item
				out = &found
			}
		}
	})
	return out, nil
}

func (r *itemRepo) Update(_ context.Context, item *entity.Item) error {
	return r.v.write(func(d *state) error {
		current, ok := d.items[item.ID]
		if !ok {
			return domain.ErrItemNotFound
		}
		total, available := current.TotalQuantity, current.AvailableQuantity
		current = *item
		current.TotalQuantity, current.AvailableQuantity = total, available
		d.items[item.ID] = current
		return nil
	})
}

func (r *itemRepo) UpdateQuantities(_ context.Context, item *entity.Item) error {
	return r.v.write(func(d *state) error {
		current, ok := d.items[item.ID]
		if !ok {
			return domain.ErrItemNotFound
		}
		if item.AvailableQuantity < 0 || item.AvailableQuantity > item.TotalQuantity {
			return domain.ErrInsufficientStock
		}
		current.TotalQuantity = item.TotalQuantity
		current.AvailableQuantity = item.AvailableQuantity
		current.UpdatedAt = time.Now()
		d.items[item.ID] = current
		return nil
	})
}

func (r *itemRepo) ListByOrganization(_ context.Context, organizationID string, activeOnly bool, limit, offset int) ([]*entity.Item, error) {
	var list []entity.Item
	r.v.read(func(d *state) {
		for _, item := range d.items {
			if item.OrganizationID == organizationID && (!activeOnly || item.Status == entity.StatusActive) {
				list = append(list, item)
			}
		}
	})
	slices.SortFunc(list, func(a, b entity.Item) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	list = paginate(list, limit, offset)
	out := make([]*entity.Item, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, nil
}

func (r *itemRepo) CountByOrganization(_ context.Context, organizationID string) (int64, error) {
	var n int64
	r.v.read(func(d *state) {
		for _, item := range d.items {
			if item.OrganizationID == organizationID {
				n++
			}
		}
	})
	return n, nil
}

func (r *itemRepo) SerialExists(_ context.Context, serial string) (bool, error) {
	var exists bool
	r.v.read(func(d *state) {
		for _, item := range d.items {
			if item.SerialNumber == serial {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

type instanceRepo struct{ v *view }

func fifo(a, b entity.ItemInstance) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.Seq, b.Seq)
}

func (r *instanceRepo) CreateBatch(_ context.Context, instances []*entity.ItemInstance) error {
	return r.v.write(func(d *state) error {
		for _, inst := range instances {
			if _, ok := d.instances[inst.ID]; ok {
				return domain.ErrConflict
			}
			d.seq++
			inst.Seq = d.seq
			d.instances[inst.ID] = *inst
		}
		return nil
	})
}

func (r *instanceRepo) GetByID(_ context.Context, id string) (*entity.ItemInstance, error) {
	var out *entity.ItemInstance
	r.v.read(func(d *state) {
		if inst, ok := d.instances[id]; ok {
			out = &inst
		}
	})
	return out, nil
}

func (r *instanceRepo) active(itemID string, keep func(entity.ItemInstance) bool) []entity.ItemInstance {
	var list []entity.ItemInstance
	r.v.read(func(d *state) {
		for _, inst := range d.instances {
			if inst.ItemID == itemID && inst.Status == entity.StatusActive && keep(inst) {
				list = append(list, inst)
			}
		}
	})
	slices.SortFunc(list, fifo)
	return list
}

func (r *instanceRepo) SelectOldestActive(_ context.Context, itemID, disposition string) (*entity.ItemInstance, error) {
	list := r.active(itemID, func(i entity.ItemInstance) bool { return i.Disposition == disposition })
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (r *instanceRepo) ListNewestActive(_ context.Context, itemID string, n int) ([]*entity.ItemInstance, error) {
	list := r.active(itemID, func(i entity.ItemInstance) bool { return i.Disposition == entity.DispositionAvailable })
	slices.Reverse(list)
	if n < len(list) {
		list = list[:n]
	}
	out := make([]*entity.ItemInstance, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, nil
}

func (r *instanceRepo) Update(_ context.Context, inst *entity.ItemInstance) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.instances[inst.ID]; !ok {
			return domain.ErrItemInstanceNotFound
		}
		d.instances[inst.ID] = *inst
		return nil
	})
}

func (r *instanceRepo) StopAllActive(_ context.Context, itemID string, at time.Time) (int64, error) {
	var n int64
	err := r.v.write(func(d *state) error {
		for id, inst := range d.instances {
			if inst.ItemID != itemID || inst.Status != entity.StatusActive {
				continue
			}
			inst.Disposition = entity.DispositionStopped
			inst.Status = entity.StatusStopped
			inst.BorrowerID = ""
			inst.SupplyRequestID = ""
			inst.UpdatedAt = at
			d.instances[id] = inst
			n++
		}
		return nil
	})
	return n, err
}

func (r *instanceRepo) ListByItem(_ context.Context, itemID string) ([]*entity.ItemInstance, error) {
	var list []entity.ItemInstance
	r.v.read(func(d *state) {
		for _, inst := range d.instances {
			if inst.ItemID == itemID {
				list = append(list, inst)
			}
		}
	})
	slices.SortFunc(list, fifo)
	out := make([]*entity.ItemInstance, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, nil
}
