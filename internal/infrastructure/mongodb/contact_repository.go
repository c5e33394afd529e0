package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository sobre MongoDB.
type ContactRepo struct {
	col *mongo.Collection
}

// NewContactRepository construye el adaptador.
func NewContactRepository(db *mongo.Database) *ContactRepo {
	return &ContactRepo{col: db.Collection(colContacts)}
}

// Create persiste un contacto.
func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	if _, err := r.col.InsertOne(ctx, toContactDoc(c)); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetByID obtiene un contacto; (nil, nil) si no existe.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	var doc contactDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return doc.toEntity(), nil
}

// List todos los contactos.
func (r *ContactRepo) List(ctx context.Context) ([]*entity.Contact, error) {
	return r.find(ctx, bson.M{})
}

// ListByLead contactos de un lead.
func (r *ContactRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Contact, error) {
	return r.find(ctx, bson.M{"lead_id": leadID})
}

func (r *ContactRepo) find(ctx context.Context, filter bson.M) ([]*entity.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	var docs []contactDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	out := make([]*entity.Contact, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// Update reemplaza los campos editables; ErrNotFound si no existe.
func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": bson.M{
		"name":       c.Name,
		"role":       c.Role,
		"phone":      c.Phone,
		"email":      c.Email,
		"updated_at": c.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un contacto; ErrNotFound si no existe.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByLead elimina los contactos del lead y devuelve cuántos borró.
func (r *ContactRepo) DeleteByLead(ctx context.Context, leadID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"lead_id": leadID})
	if err != nil {
		return 0, fmt.Errorf("delete contacts by lead: %w", err)
	}
	return res.DeletedCount, nil
}
