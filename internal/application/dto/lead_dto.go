package dto

import "time"

// CreateLeadRequest body para POST /api/leads.
// Las fechas aceptan RFC 3339 o YYYY-MM-DD. Status por defecto New, CallFrequency por defecto Weekly.
type CreateLeadRequest struct {
	Name          string              `json:"name" validate:"required,max=200"`
	Address       string              `json:"address,omitempty"`
	Phone         string              `json:"phone" validate:"required"`
	Email         string              `json:"email" validate:"required,email"`
	Status        string              `json:"status,omitempty" validate:"omitempty,oneof=New Contacted Interested Closed"`
	CallFrequency string              `json:"call_frequency,omitempty" validate:"omitempty,oneof=Daily Weekly Monthly"`
	LastCallDate  string              `json:"last_call_date,omitempty"`
	KAMID         string              `json:"kam_id,omitempty"`
	CallSchedule  []CreateCallRequest `json:"call_schedule,omitempty" validate:"omitempty,dive"`
}

// UpdateLeadRequest body para PUT /api/leads/:id. Solo se modifican los campos presentes.
// LastCallDate o KAMID con "" limpian el valor.
type UpdateLeadRequest struct {
	Name          *string `json:"name" validate:"omitnil,nonblank,max=200"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone" validate:"omitnil,nonblank"`
	Email         *string `json:"email" validate:"omitnil,nonblank,email"`
	Status        *string `json:"status" validate:"omitnil,oneof=New Contacted Interested Closed"`
	CallFrequency *string `json:"call_frequency" validate:"omitnil,oneof=Daily Weekly Monthly"`
	LastCallDate  *string `json:"last_call_date"`
	KAMID         *string `json:"kam_id"`
}

// CreateCallRequest body para POST /api/leads/:id/calls. Status por defecto Scheduled.
type CreateCallRequest struct {
	Date   string `json:"date" validate:"required"`
	Notes  string `json:"notes,omitempty"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=Scheduled Completed Missed"`
}

// UpdateCallRequest body para PUT /api/leads/:id/calls/:callId.
type UpdateCallRequest struct {
	Date   *string `json:"date" validate:"omitnil,nonblank"`
	Notes  *string `json:"notes"`
	Status *string `json:"status" validate:"omitnil,oneof=Scheduled Completed Missed"`
}

// CallResponse entrada de la agenda de llamadas.
type CallResponse struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Notes  string    `json:"notes"`
	Status string    `json:"status"`
}

// LeadResponse lead en respuestas. Contacts e Interactions solo se incluyen al expandir.
type LeadResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Address       string                `json:"address"`
	Phone         string                `json:"phone"`
	Email         string                `json:"email"`
	Status        string                `json:"status"`
	CallFrequency string                `json:"call_frequency"`
	LastCallDate  *time.Time            `json:"last_call_date,omitempty"`
	KAMID         string                `json:"kam_id,omitempty"`
	CallDue       bool                  `json:"call_due"`
	CallSchedule  []CallResponse        `json:"call_schedule"`
	Contacts      []ContactResponse     `json:"contacts,omitempty"`
	Interactions  []InteractionResponse `json:"interactions,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}
