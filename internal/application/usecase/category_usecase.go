package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/domain"
	"github.com/jhoicas/suministros-api/internal/domain/entity"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
)

// CategoryUseCase casos de uso de categorías de artículos.
type CategoryUseCase struct {
	repo    repository.CategoryRepository
	orgRepo repository.OrganizationRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, orgRepo repository.OrganizationRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, orgRepo: orgRepo}
}

// Create crea una categoría en la organización del usuario.
func (uc *CategoryUseCase) Create(ctx context.Context, caller dto.Caller, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.orgRepo.GetByID(ctx, caller.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrOrganizationNotFound
	}
	category := &entity.Category{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Name:           name,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista las categorías de la organización.
func (uc *CategoryUseCase) List(ctx context.Context, caller dto.Caller) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, caller.OrganizationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		CreatedAt:      c.CreatedAt,
	}
}
