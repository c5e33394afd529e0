package crm

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/leads-crm-api/internal/application/dto"
	"github.com/jhoicas/leads-crm-api/internal/application/validation"
	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

// Límites de GET /api/interactions/recent.
const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

// InteractionUseCase casos de uso de interacciones (llamadas, pedidos, emails, reuniones).
type InteractionUseCase struct {
	interactions repository.InteractionRepository
	leads        repository.LeadRepository
	now          func() time.Time
}

// NewInteractionUseCase construye el caso de uso.
func NewInteractionUseCase(interactions repository.InteractionRepository, leads repository.LeadRepository) *InteractionUseCase {
	return &InteractionUseCase{interactions: interactions, leads: leads, now: time.Now}
}

// List lista todas las interacciones, o solo las del lead si leadID no está vacío.
func (uc *InteractionUseCase) List(ctx context.Context, leadID string) ([]dto.InteractionResponse, error) {
	if leadID != "" {
		if err := checkIDParam(leadID); err != nil {
			return nil, err
		}
	}
	list, err := uc.interactions.List(ctx, repository.InteractionFilter{LeadID: leadID})
	if err != nil {
		return nil, err
	}
	return toInteractionResponses(list), nil
}

// Recent devuelve las limit interacciones más recientes (por fecha, descendente).
func (uc *InteractionUseCase) Recent(ctx context.Context, limit int) ([]dto.InteractionResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	list, err := uc.interactions.List(ctx, repository.InteractionFilter{Limit: limit})
	if err != nil {
		return nil, err
	}
	return toInteractionResponses(list), nil
}

// Create registra una interacción de un lead existente.
func (uc *InteractionUseCase) Create(ctx context.Context, leadID string, in dto.CreateInteractionRequest) (*dto.InteractionResponse, error) {
	if err := checkIDParam(leadID); err != nil {
		return nil, err
	}
	v := &domain.ValidationError{}
	validation.Struct(v, in)
	now := uc.now()
	it := &entity.Interaction{
		ID:          domain.NewID(),
		LeadID:      leadID,
		Type:        entity.InteractionType(in.Type),
		Date:        dateField(v, "date", in.Date, now.Location()),
		Notes:       strings.TrimSpace(in.Notes),
		OrderAmount: in.OrderAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	validateInteraction(v, it)
	if err := v.Err(); err != nil {
		return nil, err
	}
	lead, err := uc.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.interactions.Create(ctx, it); err != nil {
		return nil, err
	}
	it.LeadName = lead.Name
	out := toInteractionResponse(it)
	return &out, nil
}

// Update aplica los campos presentes en in. Si el tipo deja de ser Order y no se envía order_amount,
// el monto se descarta; "order_amount": null lo borra explícitamente.
func (uc *InteractionUseCase) Update(ctx context.Context, id string, in dto.UpdateInteractionRequest) (*dto.InteractionResponse, error) {
	if err := checkIDParam(id); err != nil {
		return nil, err
	}
	v := &domain.ValidationError{}
	validation.Struct(v, in)
	if err := v.Err(); err != nil {
		return nil, err
	}
	it, err := uc.interactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	if in.Type != nil {
		it.Type = entity.InteractionType(*in.Type)
		if it.Type != entity.InteractionOrder && !in.OrderAmount.Set {
			it.OrderAmount = nil
		}
	}
	if in.Date != nil {
		it.Date = dateField(v, "date", *in.Date, uc.now().Location())
	}
	if in.Notes != nil {
		it.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.OrderAmount.Set {
		it.OrderAmount = in.OrderAmount.Value
	}
	validateInteraction(v, it)
	if err := v.Err(); err != nil {
		return nil, err
	}
	it.UpdatedAt = uc.now()
	if err := uc.interactions.Update(ctx, it); err != nil {
		return nil, err
	}
	out := toInteractionResponse(it)
	return &out, nil
}

// Delete elimina una interacción.
func (uc *InteractionUseCase) Delete(ctx context.Context, id string) error {
	if err := checkIDParam(id); err != nil {
		return err
	}
	return uc.interactions.Delete(ctx, id)
}

// validateInteraction aplica las reglas de order_amount que dependen del tipo resultante.
func validateInteraction(v *domain.ValidationError, it *entity.Interaction) {
	if it.OrderAmount == nil {
		return
	}
	if it.Type != entity.InteractionOrder {
		v.Add("order_amount", "only allowed for Order interactions")
		return
	}
	if it.OrderAmount.IsNegative() {
		v.Add("order_amount", "must be greater than or equal to 0")
	}
}
