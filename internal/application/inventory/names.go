package inventory

import (
	"context"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// nameCache resuelve nombres de artículo y categoría para respuestas desnormalizadas.
type nameCache struct {
	repos      repository.Repositories
	items      map[string]*entity.Item
	categories map[string]string
}

func newNameCache(repos repository.Repositories) *nameCache {
	return &nameCache{repos: repos, items: map[string]*entity.Item{}, categories: map[string]string{}}
}

func (c *nameCache) item(ctx context.Context, id string) *entity.Item {
	if it, ok := c.items[id]; ok {
		return it
	}
	it, err := c.repos.Items.GetByID(ctx, id)
	if err != nil || it == nil {
		it = &entity.Item{ID: id}
	}
	c.items[id] = it
	return it
}

func (c *nameCache) category(ctx context.Context, id string) string {
	if name, ok := c.categories[id]; ok {
		return name
	}
	name := ""
	if cat, err := c.repos.Categories.GetByID(ctx, id); err == nil && cat != nil {
		name = cat.Name
	}
	c.categories[id] = name
	return name
}
