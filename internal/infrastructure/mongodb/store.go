// Package mongodb implementa los puertos de repository sobre MongoDB.
// Los identificadores son UUID en texto guardados en _id, igual que en PostgreSQL.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/leads-crm-api/pkg/config"
)

// Store agrupa los adaptadores MongoDB sobre un mismo cliente.
type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	Leads        *LeadRepo
	Contacts     *ContactRepo
	Interactions *InteractionRepo
	Users        *UserRepo
	Tx           *DeletionRunner
}

// Open conecta, verifica el servidor y crea los índices.
func Open(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db := client.Database(cfg.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	s := &Store{
		client:       client,
		db:           db,
		Leads:        NewLeadRepository(db),
		Contacts:     NewContactRepository(db),
		Interactions: NewInteractionRepository(db),
		Users:        NewUserRepository(db),
	}
	s.Tx = NewDeletionRunner(s.Leads, s.Contacts, s.Interactions)
	log.Info().Str("database", cfg.Database).Msg("MongoDB conectado")
	return s, nil
}

// Ping verifica la conexión (health check).
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close desconecta el cliente.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes crea los índices usados por búsquedas, cascadas y unicidad de email.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		colLeads: {
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "call_schedule.status", Value: 1}}},
		},
		colContacts: {
			{Keys: bson.D{{Key: "lead_id", Value: 1}}},
		},
		colInteractions: {
			{Keys: bson.D{{Key: "lead_id", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("índices de %s: %w", col, err)
		}
	}
	return nil
}
