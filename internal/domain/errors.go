package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidID          = errors.New("invalid identifier")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// FieldError mensaje de validación asociado a un campo del cuerpo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa los errores por campo de una escritura rechazada.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields []FieldError
}

// Add registra un error de campo.
func (v *ValidationError) Add(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
}

// Err devuelve nil si no hay errores registrados.
func (v *ValidationError) Err() error {
	if v == nil || len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (v *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// RequireNonEmpty registra "is required" si value está vacío (ignorando espacios).
func (v *ValidationError) RequireNonEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}
