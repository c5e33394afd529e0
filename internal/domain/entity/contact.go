package entity

import "time"

// Contact persona de contacto (gerente, dueño, ...) de un lead.
type Contact struct {
	ID        string
	LeadID    string
	Name      string
	Role      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
