package repository

import (
	"context"

	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
)

// LeadRepository define el puerto de persistencia para Lead y su agenda de llamadas embebida.
// GetByID devuelve (nil, nil) si el lead no existe; las escrituras devuelven domain.ErrNotFound.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	List(ctx context.Context) ([]*entity.Lead, error)
	// Search busca por nombre (subcadena, sin distinguir mayúsculas).
	Search(ctx context.Context, query string) ([]*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id string) error

	// ── Agenda de llamadas (operaciones atómicas sobre el lead) ──────────────

	AddCall(ctx context.Context, leadID string, call entity.CallScheduleEntry) error
	// RemoveCall no falla si callID no está en la agenda.
	RemoveCall(ctx context.Context, leadID, callID string) error
	UpdateCall(ctx context.Context, leadID string, call entity.CallScheduleEntry) error

	// ── Métricas del dashboard ──────────────────────────────────────────────

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.LeadStatus) (int64, error)
	// CountCallsByStatus cuenta entradas de agenda con ese estado en todos los leads.
	CountCallsByStatus(ctx context.Context, status entity.CallStatus) (int64, error)
}
