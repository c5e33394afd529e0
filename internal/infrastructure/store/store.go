// Package store abre el backend de persistencia configurado (MongoDB o PostgreSQL)
// y expone sus repositorios detrás de los puertos del dominio.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
	"github.com/jhoicas/leads-crm-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/leads-crm-api/internal/infrastructure/postgres"
	"github.com/jhoicas/leads-crm-api/pkg/config"
)

// Repositories repositorios de un mismo backend más su runner de borrado en cascada.
type Repositories struct {
	Leads        repository.LeadRepository
	Contacts     repository.ContactRepository
	Interactions repository.InteractionRepository
	Users        repository.UserRepository
	Tx           crm.LeadTxRunner

	ping  func(context.Context) error
	close func(context.Context) error
}

// Open conecta al backend indicado por cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Leads: s.Leads, Contacts: s.Contacts, Interactions: s.Interactions, Users: s.Users, Tx: s.Tx,
			ping: s.Ping, close: s.Close,
		}, nil
	case config.DriverMongo:
		s, err := mongodb.Open(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Leads: s.Leads, Contacts: s.Contacts, Interactions: s.Interactions, Users: s.Users, Tx: s.Tx,
			ping: s.Ping, close: s.Close,
		}, nil
	}
	return nil, fmt.Errorf("store: driver no soportado: %q", cfg.Store.Driver)
}

// Ping verifica la conexión con el backend.
func (r *Repositories) Ping(ctx context.Context) error {
	return r.ping(ctx)
}

// Close libera el cliente o pool subyacente.
func (r *Repositories) Close(ctx context.Context) error {
	return r.close(ctx)
}
