package dto

import "time"

// CreateContactRequest body para POST /api/contacts/:leadId.
type CreateContactRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Role  string `json:"role,omitempty"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateContactRequest body para PUT /api/contacts/:id.
type UpdateContactRequest struct {
	Name  *string `json:"name" validate:"omitnil,nonblank,max=200"`
	Role  *string `json:"role"`
	Phone *string `json:"phone" validate:"omitnil,nonblank"`
	Email *string `json:"email" validate:"omitnil,nonblank,email"`
}

// ContactResponse contacto en respuestas.
type ContactResponse struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
