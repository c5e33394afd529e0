package dto

import "github.com/jhoicas/leads-crm-api/internal/domain"

// ErrorResponse cuerpo de error HTTP: code (máquina), message (humano) y error (detalle técnico).
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Error   string              `json:"error,omitempty"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo (ej. DELETE).
type MessageResponse struct {
	Message string `json:"message"`
}
