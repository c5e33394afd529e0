package repository

import (
	"context"

	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
)

// InteractionFilter filtros de listado. LeadID vacío = todas las interacciones.
type InteractionFilter struct {
	LeadID string
	Limit  int // 0 = sin límite; con límite se ordena por fecha descendente
}

// InteractionSummaryResult conteo de interacciones de un lead (solo leads con al menos una).
type InteractionSummaryResult struct {
	LeadID           string
	LeadName         string
	InteractionCount int64
}

// InteractionRepository define el puerto de persistencia para Interaction.
// List completa LeadName con el nombre del lead referenciado.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *entity.Interaction) error
	GetByID(ctx context.Context, id string) (*entity.Interaction, error)
	List(ctx context.Context, filter InteractionFilter) ([]*entity.Interaction, error)
	Update(ctx context.Context, interaction *entity.Interaction) error
	Delete(ctx context.Context, id string) error
	DeleteByLead(ctx context.Context, leadID string) (int64, error)
	// SummaryByLead agrupa por lead; los leads sin interacciones no aparecen.
	SummaryByLead(ctx context.Context) ([]InteractionSummaryResult, error)
}
