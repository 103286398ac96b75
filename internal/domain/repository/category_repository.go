package repository

import (
	"context"

	"github.com/jhoicas/suministros-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Category, error)
}

// OrganizationRepository resuelve paneles de gestión.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
}
