package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

var (
	_ repository.RegisterItemRepository = (*registerRepo)(nil)
	_ repository.CategoryRepository     = (*categoryRepo)(nil)
	_ repository.OrganizationRepository = (*organizationRepo)(nil)
	_ repository.UserRepository         = (*userRepo)(nil)
)

type registerRepo struct{ v *view }

func (r *registerRepo) Create(_ context.Context, g *entity.RegisterItem) error {
	return r.v.write(func(d *state) error {
		d.registers[g.ID] = *g
		return nil
	})
}

func (r *registerRepo) GetByID(_ context.Context, id string) (*entity.RegisterItem, error) {
	var out *entity.RegisterItem
	r.v.read(func(d *state) {
		if g, ok := d.registers[id]; ok {
			out = &g
		}
	})
	return out, nil
}

func (r *registerRepo) GetForUpdate(ctx context.Context, id string) (*entity.RegisterItem, error) {
	return r.GetByID(ctx, id)
}

func (r *registerRepo) Update(_ context.Context, g *entity.RegisterItem) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.registers[g.ID]; !ok {
			return domain.ErrRegisterItemNotFound
		}
		d.registers[g.ID] = *g
		return nil
	})
}

func (r *registerRepo) ListByOrganization(_ context.Context, organizationID string, limit, offset int) ([]*entity.RegisterItem, error) {
	var out []*entity.RegisterItem
	r.v.read(func(d *state) {
		out = listFiltered(d.registers, func(g entity.RegisterItem) row {
			return row{organization: g.OrganizationID, createdAt: g.CreatedAt, id: g.ID}
		}, repository.ListFilter{OrganizationID: organizationID, Limit: limit, Offset: offset})
	})
	return out, nil
}

type categoryRepo struct{ v *view }

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.v.write(func(d *state) error {
		d.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	r.v.read(func(d *state) {
		if c, ok := d.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *categoryRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.Category, error) {
	var list []entity.Category
	r.v.read(func(d *state) {
		for _, c := range d.categories {
			if c.OrganizationID == organizationID {
				list = append(list, c)
			}
		}
	})
	slices.SortFunc(list, func(a, b entity.Category) int { return cmp.Compare(a.Name, b.Name) })
	out := make([]*entity.Category, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out, nil
}

type organizationRepo struct{ v *view }

func (r *organizationRepo) Create(_ context.Context, o *entity.Organization) error {
	return r.v.write(func(d *state) error {
		d.organizations[o.ID] = *o
		return nil
	})
}

func (r *organizationRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	var out *entity.Organization
	r.v.read(func(d *state) {
		if o, ok := d.organizations[id]; ok {
			out = &o
		}
	})
	return out, nil
}

type userRepo struct{ v *view }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(d *state) error {
		for _, other := range d.users {
			if strings.EqualFold(other.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(d *state) {
		if u, ok := d.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(d *state) {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, email) {
				found := u
				out = &found
				return
			}
		}
	})
	return out, nil
}
