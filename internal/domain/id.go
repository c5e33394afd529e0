package domain

import "github.com/google/uuid"

// NewID genera un identificador opaco (UUIDv4) común a todos los backends de persistencia.
func NewID() string {
	return uuid.New().String()
}

// ValidateID rechaza identificadores mal formados antes de consultar el almacén.
func ValidateID(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
