package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

var _ repository.InteractionRepository = (*InteractionRepo)(nil)

// InteractionRepo implementación de InteractionRepository sobre MongoDB.
// El nombre del lead se resuelve con $lookup sobre la colección leads.
type InteractionRepo struct {
	col *mongo.Collection
}

// NewInteractionRepository construye el adaptador.
func NewInteractionRepository(db *mongo.Database) *InteractionRepo {
	return &InteractionRepo{col: db.Collection(colInteractions)}
}

// Create persiste la interacción (order_amount como Decimal128).
func (r *InteractionRepo) Create(ctx context.Context, in *entity.Interaction) error {
	doc, err := toInteractionDoc(in)
	if err != nil {
		return fmt.Errorf("%w: order_amount: %v", domain.ErrInvalidInput, err)
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// GetByID obtiene una interacción con el nombre del lead; (nil, nil) si no existe.
func (r *InteractionRepo) GetByID(ctx context.Context, id string) (*entity.Interaction, error) {
	list, err := r.aggregate(ctx, listPipeline(bson.M{"_id": id}, 0))
	if err != nil {
		return nil, fmt.Errorf("get interaction: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// List filtra por lead; con Limit devuelve las más recientes primero.
func (r *InteractionRepo) List(ctx context.Context, filter repository.InteractionFilter) ([]*entity.Interaction, error) {
	match := bson.M{}
	if filter.LeadID != "" {
		match["lead_id"] = filter.LeadID
	}
	list, err := r.aggregate(ctx, listPipeline(match, filter.Limit))
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	return list, nil
}

// listPipeline $match → $sort → [$limit] → $lookup leads → lead_name.
func listPipeline(match bson.M, limit int) mongo.Pipeline {
	sort := bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}
	if limit > 0 {
		sort = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}
	}
	p := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: sort}},
	}
	if limit > 0 {
		p = append(p, bson.D{{Key: "$limit", Value: int64(limit)}})
	}
	return append(p, lookupLeadName()...)
}

func lookupLeadName() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         colLeads,
			"localField":   "lead_id",
			"foreignField": "_id",
			"as":           "lead",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"lead_name": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$lead.name", 0}}, ""}},
		}}},
		{{Key: "$project", Value: bson.M{"lead": 0}}},
	}
}

func (r *InteractionRepo) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*entity.Interaction, error) {
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []interactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*entity.Interaction, 0, len(docs))
	for _, d := range docs {
		in, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

// Update reemplaza los campos editables; ErrNotFound si no existe.
func (r *InteractionRepo) Update(ctx context.Context, in *entity.Interaction) error {
	doc, err := toInteractionDoc(in)
	if err != nil {
		return fmt.Errorf("%w: order_amount: %v", domain.ErrInvalidInput, err)
	}
	update := bson.M{"$set": bson.M{
		"type":       doc.Type,
		"date":       doc.Date,
		"notes":      doc.Notes,
		"updated_at": doc.UpdatedAt,
	}}
	if doc.OrderAmount != nil {
		update["$set"].(bson.M)["order_amount"] = doc.OrderAmount
	} else {
		update["$unset"] = bson.M{"order_amount": ""}
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": in.ID}, update)
	if err != nil {
		return fmt.Errorf("update interaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una interacción; ErrNotFound si no existe.
func (r *InteractionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByLead elimina las interacciones del lead y devuelve cuántas borró.
func (r *InteractionRepo) DeleteByLead(ctx context.Context, leadID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"lead_id": leadID})
	if err != nil {
		return 0, fmt.Errorf("delete interactions by lead: %w", err)
	}
	return res.DeletedCount, nil
}

// SummaryByLead $group por lead + $lookup del nombre, de mayor a menor.
func (r *InteractionRepo) SummaryByLead(ctx context.Context) ([]repository.InteractionSummaryResult, error) {
	cur, err := r.col.Aggregate(ctx, summaryPipeline())
	if err != nil {
		return nil, fmt.Errorf("summary interactions: %w", err)
	}
	var rows []struct {
		LeadID           string `bson:"lead_id"`
		LeadName         string `bson:"lead_name"`
		InteractionCount int64  `bson:"interaction_count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	out := make([]repository.InteractionSummaryResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.InteractionSummaryResult{
			LeadID:           row.LeadID,
			LeadName:         row.LeadName,
			InteractionCount: row.InteractionCount,
		})
	}
	return out, nil
}

func summaryPipeline() mongo.Pipeline {
	p := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$lead_id", "interaction_count": bson.M{"$sum": 1}}}},
		{{Key: "$addFields", Value: bson.M{"lead_id": "$_id"}}},
	}
	p = append(p, lookupLeadName()...)
	return append(p,
		bson.D{{Key: "$project", Value: bson.M{"_id": 0, "lead_id": 1, "lead_name": 1, "interaction_count": 1}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "interaction_count", Value: -1}, {Key: "lead_name", Value: 1}}}},
	)
}
