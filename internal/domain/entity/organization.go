package entity

import "time"

// Organization panel de gestión al que pertenecen artículos, usuarios y solicitudes.
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
