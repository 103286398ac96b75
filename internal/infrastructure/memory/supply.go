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
	_ repository.SupplyRequestRepository = (*requestRepo)(nil)
	_ repository.SupplyReturnRepository  = (*returnRepo)(nil)
	_ repository.ChaseItemRepository     = (*chaseRepo)(nil)
)

type requestRepo struct{ v *view }

func (r *requestRepo) Create(_ context.Context, s *entity.SupplyRequest) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.requests[s.ID]; ok {
			return domain.ErrConflict
		}
		d.requests[s.ID] = *s
		return nil
	})
}

func (r *requestRepo) GetByID(_ context.Context, id string) (*entity.SupplyRequest, error) {
	var out *entity.SupplyRequest
	r.v.read(func(d *state) {
		if s, ok := d.requests[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *requestRepo) GetForUpdate(ctx context.Context, id string) (*entity.SupplyRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *requestRepo) Update(_ context.Context, s *entity.SupplyRequest) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.requests[s.ID]; !ok {
			return domain.ErrSupplyRequestNotFound
		}
		d.requests[s.ID] = *s
		return nil
	})
}

func (r *requestRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(d *state) error {
		delete(d.requests, id)
		for cid, c := range d.chase {
			if c.SupplyRequestID == id {
				delete(d.chase, cid)
			}
		}
		return nil
	})
}

func (r *requestRepo) ExistsByRequesterAndItem(_ context.Context, requesterID, itemID string) (bool, error) {
	var exists bool
	r.v.read(func(d *state) {
		for _, s := range d.requests {
			if s.RequesterID == requesterID && s.ItemID == itemID {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

func (r *requestRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.SupplyRequest, error) {
	var out []*entity.SupplyRequest
	r.v.read(func(d *state) {
		out = listFiltered(d.requests, func(s entity.SupplyRequest) row {
			return row{
				organization: s.OrganizationID,
				item:         s.ItemID,
				requester:    s.RequesterID,
				status:       s.Status,
				search:       s.ProductName,
				createdAt:    s.CreatedAt,
				id:           s.ID,
			}
		}, f)
	})
	return out, nil
}

func (r *requestRepo) CountByStatus(_ context.Context, organizationID string) (map[string]int64, error) {
	counts := map[string]int64{}
	r.v.read(func(d *state) {
		for _, s := range d.requests {
			if s.OrganizationID == organizationID {
				counts[s.Status]++
			}
		}
	})
	return counts, nil
}

type returnRepo struct{ v *view }

func (r *returnRepo) Create(_ context.Context, s *entity.SupplyReturn) error {
	return r.v.write(func(d *state) error {
		for _, other := range d.returns {
			if other.SupplyRequestID == s.SupplyRequestID && other.Status != entity.ReturnRejected {
				return domain.ErrSupplyReturnExists
			}
		}
		d.returns[s.ID] = *s
		return nil
	})
}

func (r *returnRepo) GetByID(_ context.Context, id string) (*entity.SupplyReturn, error) {
	var out *entity.SupplyReturn
	r.v.read(func(d *state) {
		if s, ok := d.returns[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *returnRepo) GetForUpdate(ctx context.Context, id string) (*entity.SupplyReturn, error) {
	return r.GetByID(ctx, id)
}

func (r *returnRepo) GetOpenByRequest(_ context.Context, supplyRequestID string) (*entity.SupplyReturn, error) {
	var out *entity.SupplyReturn
	r.v.read(func(d *state) {
		for _, s := range d.returns {
			if s.SupplyRequestID == supplyRequestID && s.Status != entity.ReturnRejected {
				found := s
				out = &found
				return
			}
		}
	})
	return out, nil
}

func (r *returnRepo) Update(_ context.Context, s *entity.SupplyReturn) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.returns[s.ID]; !ok {
			return domain.ErrSupplyReturnNotFound
		}
		d.returns[s.ID] = *s
		return nil
	})
}

func (r *returnRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.SupplyReturn, error) {
	var out []*entity.SupplyReturn
	r.v.read(func(d *state) {
		out = listFiltered(d.returns, func(s entity.SupplyReturn) row {
			return row{
				organization: s.OrganizationID,
				item:         s.ItemID,
				requester:    s.RequesterID,
				status:       s.Status,
				search:       s.ProductName,
				createdAt:    s.CreatedAt,
				id:           s.ID,
			}
		}, f)
	})
	return out, nil
}

type chaseRepo struct{ v *view }

func (r *chaseRepo) Create(_ context.Context, c *entity.ChaseItem) error {
	return r.v.write(func(d *state) error {
		d.chase[c.ID] = *c
		return nil
	})
}

func (r *chaseRepo) ListByRequest(_ context.Context, supplyRequestID string) ([]*entity.ChaseItem, error) {
	var list []entity.ChaseItem
	r.v.read(func(d *state) {
		for _, c := range d.chase {
			if c.SupplyRequestID == supplyRequestID {
				list = append(list, c)
			}
		}
	})
	slices.SortFunc(list, func(a, b entity.ChaseItem) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	out := make([]*entity.ChaseItem, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, nil
}
