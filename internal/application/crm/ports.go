package crm

import (
	"context"

	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

// LeadTxRunner ejecuta el borrado en cascada de un lead (lead + contactos + interacciones).
// Postgres lo hace en una transacción; Mongo ejecuta los borrados en secuencia.
type LeadTxRunner interface {
	RunLeadDeletion(ctx context.Context, fn func(
		leads repository.LeadRepository,
		contacts repository.ContactRepository,
		interactions repository.InteractionRepository,
	) error) error
}
