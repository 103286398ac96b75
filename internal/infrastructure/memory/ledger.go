package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var (
	_ repository.InventoryInRepository  = (*inboundRepo)(nil)
	_ repository.InventoryOutRepository = (*outboundRepo)(nil)
)

type inboundRepo struct{ v *view }

func (r *inboundRepo) Create(_ context.Context, e *entity.InventoryIn) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.inbound[e.ID]; ok {
			return domain.ErrConflict
		}
		d.inbound[e.ID] = *e
		return nil
	})
}

func (r *inboundRepo) GetByID(_ context.Context, id string) (*entity.InventoryIn, error) {
	var out *entity.InventoryIn
	r.v.read(func(d *state) {
		if e, ok := d.inbound[id]; ok {
			out = &e
		}
	})
	return out, nil
}

func (r *inboundRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.InventoryIn, error) {
	var out []*entity.InventoryIn
	r.v.read(func(d *state) {
		out = listFiltered(d.inbound, func(e entity.InventoryIn) row {
			return row{
				organization: e.OrganizationID,
				item:         e.ItemID,
				kind:         e.Kind,
				search:       d.items[e.ItemID].Name,
				createdAt:    e.CreatedAt,
				id:           e.ID,
			}
		}, f)
	})
	return out, nil
}

type outboundRepo struct{ v *view }

func (r *outboundRepo) Create(_ context.Context, e *entity.InventoryOut) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.outbound[e.ID]; ok {
			return domain.ErrConflict
		}
		d.outbound[e.ID] = *e
		return nil
	})
}

func (r *outboundRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.InventoryOut, error) {
	var out []*entity.InventoryOut
	r.v.read(func(d *state) {
		out = listFiltered(d.outbound, func(e entity.InventoryOut) row {
			return row{
				organization: e.OrganizationID,
				item:         e.ItemID,
				requester:    e.RequesterID,
				kind:         e.Kind,
				search:       d.items[e.ItemID].Name,
				createdAt:    e.CreatedAt,
				id:           e.ID,
			}
		}, f)
	})
	return out, nil
}

func (r *outboundRepo) UsageRanking(_ context.Context, organizationID string, limit int) ([]repository.ItemUsage, error) {
	byItem := map[string]*repository.ItemUsage{}
	r.v.read(func(d *state) {
		for _, e := range d.outbound {
			if e.OrganizationID != organizationID {
				continue
			}
			u, ok := byItem[e.ItemID]
			if !ok {
				u = &repository.ItemUsage{ItemID: e.ItemID, ItemName: d.items[e.ItemID].Name}
				byItem[e.ItemID] = u
			}
			u.Count++
			u.Quantity += e.Quantity
		}
	})
	list := make([]repository.ItemUsage, 0, len(byItem))
	for _, u := range byItem {
		list = append(list, *u)
	}
	slices.SortFunc(list, func(a, b repository.ItemUsage) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemName, b.ItemName)
	})
	return paginate(list, limit, 0), nil
}
