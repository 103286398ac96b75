package memory

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// row proyección de una fila sobre los campos que entiende ListFilter.
type row struct {
	organization string
	item         string
	requester    string
	kind         string
	status       string
	search       string
	createdAt    time.Time
	id           string
}

func (r row) matches(f repository.ListFilter) bool {
	if r.organization != f.OrganizationID {
		return false
	}
	if f.ItemID != "" && r.item != f.ItemID {
		return false
	}
	if f.RequesterID != "" && r.requester != "" && r.requester != f.RequesterID {
		return false
	}
	if f.Kind != "" && r.kind != "" && r.kind != f.Kind {
		return false
	}
	if f.Status != "" && r.status != "" && r.status != f.Status {
		return false
	}
	if s := strings.TrimSpace(f.Search); s != "" && !strings.Contains(strings.ToLower(r.search), strings.ToLower(s)) {
		return false
	}
	if f.From != nil && r.createdAt.Before(*f.From) {
		return false
	}
	if f.To != nil && r.createdAt.After(*f.To) {
		return false
	}
	return true
}

// listFiltered filtra, ordena por (created_at, id) y pagina; devuelve copias.
func listFiltered[T any](m map[string]T, project func(T) row, f repository.ListFilter) []*T {
	type pair struct {
		r row
		v T
	}
	var matched []pair
	for _, v := range m {
		r := project(v)
		if r.matches(f) {
			matched = append(matched, pair{r: r, v: v})
		}
	}
	slices.SortFunc(matched, func(a, b pair) int {
		c := a.r.createdAt.Compare(b.r.createdAt)
		if c == 0 {
			c = cmp.Compare(a.r.id, b.r.id)
		}
		if !f.Ascending {
			c = -c
		}
		return c
	})
	matched = paginate(matched, f.Limit, f.Offset)
	out := make([]*T, 0, len(matched))
	for i := range matched {
		v := matched[i].v
		out = append(out, &v)
	}
	return out
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
