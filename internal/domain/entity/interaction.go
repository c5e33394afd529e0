package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InteractionType tipo de evento registrado con un lead.
type InteractionType string

const (
	InteractionCall    InteractionType = "Call"
	InteractionOrder   InteractionType = "Order"
	InteractionEmail   InteractionType = "Email"
	InteractionMeeting InteractionType = "Meeting"
)

// Valid indica si el tipo pertenece a la enumeración.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionCall, InteractionOrder, InteractionEmail, InteractionMeeting:
		return true
	}
	return false
}

// Interaction evento fechado (llamada, pedido, email, reunión) de un lead.
// OrderAmount solo aplica cuando Type es Order.
type Interaction struct {
	ID          string
	LeadID      string
	LeadName    string // solo lectura: se completa en listados
	Type        InteractionType
	Date        time.Time
	Notes       string
	OrderAmount *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
