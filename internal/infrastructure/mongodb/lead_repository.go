package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación de LeadRepository sobre MongoDB.
// Las operaciones de agenda usan $push / $pull / $set posicional sobre el documento del lead.
type LeadRepo struct {
	col *mongo.Collection
}

// NewLeadRepository construye el adaptador.
func NewLeadRepository(db *mongo.Database) *LeadRepo {
	return &LeadRepo{col: db.Collection(colLeads)}
}

// Create inserta el lead con su agenda inicial.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	if _, err := r.col.InsertOne(ctx, toLeadDoc(lead)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead; (nil, nil) si no existe.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	var doc leadDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return doc.toEntity(), nil
}

// List devuelve todos los leads ordenados por fecha de creación.
func (r *LeadRepo) List(ctx context.Context) ([]*entity.Lead, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
}

// Search busca por subcadena del nombre, sin distinguir mayúsculas.
func (r *LeadRepo) Search(ctx context.Context, query string) ([]*entity.Lead, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
}

func (r *LeadRepo) find(ctx context.Context, filter any, opts *options.FindOptions) ([]*entity.Lead, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	var docs []leadDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	out := make([]*entity.Lead, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// Update persiste los campos escalares; la agenda no se modifica.
func (r *LeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	set := bson.M{
		"name":           lead.Name,
		"address":        lead.Address,
		"phone":          lead.Phone,
		"email":          lead.Email,
		"status":         string(lead.Status),
		"call_frequency": string(lead.CallFrequency),
		"last_call_date": lead.LastCallDate,
		"kam_id":         lead.KAMID,
		"updated_at":     lead.UpdatedAt,
	}
	return r.updateOne(ctx, bson.M{"_id": lead.ID}, bson.M{"$set": set})
}

// Delete elimina el lead; ErrNotFound si no existe.
func (r *LeadRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Agenda de llamadas ────────────────────────────────────────────────────────

// AddCall agrega la llamada al final de la agenda.
func (r *LeadRepo) AddCall(ctx context.Context, leadID string, call entity.CallScheduleEntry) error {
	return r.updateOne(ctx, bson.M{"_id": leadID}, bson.M{
		"$push": bson.M{"call_schedule": toCallDoc(call)},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

// RemoveCall quita la llamada si existe; ErrNotFound solo si el lead no existe.
func (r *LeadRepo) RemoveCall(ctx context.Context, leadID, callID string) error {
	return r.updateOne(ctx, bson.M{"_id": leadID}, bson.M{
		"$pull": bson.M{"call_schedule": bson.M{"_id": callID}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

// UpdateCall reemplaza la llamada con el mismo id; ErrNotFound si el lead o la llamada no existen.
func (r *LeadRepo) UpdateCall(ctx context.Context, leadID string, call entity.CallScheduleEntry) error {
	return r.updateOne(ctx,
		bson.M{"_id": leadID, "call_schedule._id": call.ID},
		bson.M{"$set": bson.M{
			"call_schedule.$": toCallDoc(call),
			"updated_at":      time.Now(),
		}},
	)
}

func (r *LeadRepo) updateOne(ctx context.Context, filter, update any) error {
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Métricas ──────────────────────────────────────────────────────────────────

// Count total de leads.
func (r *LeadRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

// CountByStatus leads con el estado indicado.
func (r *LeadRepo) CountByStatus(ctx context.Context, status entity.LeadStatus) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("count leads by status: %w", err)
	}
	return n, nil
}

// CountCallsByStatus llamadas con el estado indicado en todos los leads ($unwind + $match + $count).
func (r *LeadRepo) CountCallsByStatus(ctx context.Context, status entity.CallStatus) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$call_schedule"}},
		{{Key: "$match", Value: bson.M{"call_schedule.status": string(status)}}},
		{{Key: "$count", Value: "n"}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("count calls by status: %w", err)
	}
	var rows []struct {
		N int64 `bson:"n"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode call count: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].N, nil
}
