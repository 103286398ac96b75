package dto

import "time"

// Caller identidad del usuario que invoca el motor (resuelta por el middleware de auth).
type Caller struct {
	UserID         string
	OrganizationID string
	Role           string
}

// IsManager indica si el usuario puede aprobar solicitudes y devoluciones.
func (c Caller) IsManager() bool {
	return c.Role == "admin" || c.Role == "manager"
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// RegisterRequest entrada para crear un usuario dentro de una organización.
type RegisterRequest struct {
	OrganizationID string `json:"organization_id" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Name           string `json:"name"`
	Role           string `json:"role"` // admin | manager | user
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateOrganizationRequest entrada para crear un panel de gestión.
type CreateOrganizationRequest struct {
	Name  string           `json:"name" validate:"required"`
	Admin *RegisterRequest `json:"admin,omitempty"` // primer admin (organization_id y role se ignoran)
}

// OrganizationResponse salida de un panel de gestión.
type OrganizationResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	Admin     *UserResponse `json:"admin,omitempty"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
}
