package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/leads-crm-api/pkg/config"
)

// Store agrupa los adaptadores PostgreSQL sobre un mismo pool.
type Store struct {
	pool         *pgxpool.Pool
	Leads        *LeadRepo
	Contacts     *ContactRepo
	Interactions *InteractionRepo
	Users        *UserRepo
	Tx           *TxRunner
}

// Open conecta, aplica el esquema y construye los repositorios.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{
		pool:         pool,
		Leads:        NewLeadRepository(pool),
		Contacts:     NewContactRepository(pool),
		Interactions: NewInteractionRepository(pool),
		Users:        NewUserRepository(pool),
		Tx:           NewTxRunner(pool),
	}, nil
}

// Ping verifica la conexión (health check).
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close libera el pool.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}
