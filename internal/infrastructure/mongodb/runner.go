package mongodb

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

var _ crm.LeadTxRunner = (*DeletionRunner)(nil)

// DeletionRunner ejecuta el borrado en cascada en secuencia, sin transacción
// (un servidor MongoDB standalone no admite transacciones multi-documento).
type DeletionRunner struct {
	leads        repository.LeadRepository
	contacts     repository.ContactRepository
	interactions repository.InteractionRepository
}

// NewDeletionRunner construye el runner con los repositorios del store.
func NewDeletionRunner(leads repository.LeadRepository, contacts repository.ContactRepository, interactions repository.InteractionRepository) *DeletionRunner {
	return &DeletionRunner{leads: leads, contacts: contacts, interactions: interactions}
}

// RunLeadDeletion invoca fn con los repositorios directos y registra fallos parciales.
func (r *DeletionRunner) RunLeadDeletion(ctx context.Context, fn func(
	leads repository.LeadRepository,
	contacts repository.ContactRepository,
	interactions repository.InteractionRepository,
) error) error {
	if err := fn(r.leads, r.contacts, r.interactions); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Ctx(ctx).Warn().Err(err).Msg("borrado en cascada de lead incompleto")
		}
		return err
	}
	return nil
}
