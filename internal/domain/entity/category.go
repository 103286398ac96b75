package entity

import "time"

// Category representa una categoría de artículos dentro de una organización.
type Category struct {
	ID             string
	OrganizationID string
	Name           string
	CreatedAt      time.Time
}
