package dto

import (
	"bytes"
	"time"

	"github.com/shopspring/decimal"
)

// CreateInteractionRequest body para POST /api/interactions/:leadId.
// OrderAmount solo se acepta si Type es Order.
type CreateInteractionRequest struct {
	Type        string           `json:"type" validate:"required,oneof=Call Order Email Meeting"`
	Date        string           `json:"date" validate:"required"`
	Notes       string           `json:"notes,omitempty"`
	OrderAmount *decimal.Decimal `json:"order_amount,omitempty"`
}

// UpdateInteractionRequest body para PUT /api/interactions/:id.
// "order_amount": null borra el monto; si la clave no viene, se conserva.
type UpdateInteractionRequest struct {
	Type        *string         `json:"type" validate:"omitnil,oneof=Call Order Email Meeting"`
	Date        *string         `json:"date" validate:"omitnil,nonblank"`
	Notes       *string         `json:"notes"`
	OrderAmount OptionalDecimal `json:"order_amount" swaggertype:"number"`
}

// OptionalDecimal distingue un campo ausente (Set=false) de uno enviado como null (Set=true, Value=nil).
type OptionalDecimal struct {
	Set   bool
	Value *decimal.Decimal
}

// SetDecimal construye un OptionalDecimal presente con el valor d (nil = null).
func SetDecimal(d *decimal.Decimal) OptionalDecimal {
	return OptionalDecimal{Set: true, Value: d}
}

// UnmarshalJSON solo se invoca cuando la clave está presente en el JSON.
func (o *OptionalDecimal) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

// MarshalJSON emite null cuando no hay valor.
func (o OptionalDecimal) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return o.Value.MarshalJSON()
}

// InteractionResponse interacción en respuestas; LeadName se incluye en listados.
type InteractionResponse struct {
	ID          string           `json:"id"`
	LeadID      string           `json:"lead_id"`
	LeadName    string           `json:"lead_name,omitempty"`
	Type        string           `json:"type"`
	Date        time.Time        `json:"date"`
	Notes       string           `json:"notes"`
	OrderAmount *decimal.Decimal `json:"order_amount,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
