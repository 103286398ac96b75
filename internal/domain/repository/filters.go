package repository

import "time"

// ListFilter criterios comunes para listados de libros, solicitudes y devoluciones.
// Los campos vacíos no filtran. OrganizationID es obligatorio en todos los listados.
type ListFilter struct {
	OrganizationID string
	ItemID         string
	RequesterID    string
	Kind           string // tipo de entrada o salida
	Status         string // estado de solicitud o devolución
	Search         string // coincidencia parcial sobre el nombre del artículo
	From           *time.Time
	To             *time.Time
	Ascending      bool // por defecto, más recientes primero
	Limit          int
	Offset         int
}

// ItemUsage frecuencia de salidas por artículo.
type ItemUsage struct {
	ItemID   string
	ItemName string
	Count    int64
	Quantity int64
}
