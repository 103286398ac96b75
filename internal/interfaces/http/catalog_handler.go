package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/suministros-api/internal/application/auth"
	"github.com/jhoicas/suministros-api/internal/application/dto"
	"github.com/jhoicas/suministros-api/internal/application/usecase"
)

// CatalogHandler CRUD mínimo de paneles de gestión y categorías.
type CatalogHandler struct {
	orgs       *usecase.OrganizationUseCase
	categories *usecase.CategoryUseCase
	auth       *auth.AuthUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(orgs *usecase.OrganizationUseCase, categories *usecase.CategoryUseCase, authUC *auth.AuthUseCase) *CatalogHandler {
	return &CatalogHandler{orgs: orgs, categories: categories, auth: authUC}
}

// CreateOrganization godoc
// @Summary      Crear panel de gestión
// @Description  Con "admin" crea además el primer usuario administrador del panel.
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrganizationRequest  true  "name, admin{email, password, name}"
// @Success      201   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/organizations [post]
func (h *CatalogHandler) CreateOrganization(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Admin != nil {
		if msg := credentialsProblem(*in.Admin); msg != "" {
			return validationError(c, msg)
		}
	}
	out, err := h.orgs.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	if in.Admin != nil {
		admin, err := h.auth.BootstrapAdmin(c.Context(), out.ID, *in.Admin)
		if err != nil {
			return writeError(c, err)
		}
		out.Admin = admin
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetOrganization godoc
// @Summary      Panel de gestión del usuario actual
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/me [get]
func (h *CatalogHandler) GetOrganization(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.orgs.GetByID(c.Context(), caller.OrganizationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.categories.Create(c.Context(), caller, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.categories.List(c.Context(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
