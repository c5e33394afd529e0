package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

var _ repository.InteractionRepository = (*InteractionRepo)(nil)

// InteractionRepo implementación de InteractionRepository sobre PostgreSQL.
type InteractionRepo struct {
	q Querier
}

// NewInteractionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInteractionRepository(q Querier) *InteractionRepo {
	return &InteractionRepo{q: q}
}

// Create persiste la interacción; ErrNotFound si el lead no existe.
func (r *InteractionRepo) Create(ctx context.Context, in *entity.Interaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO interactions (id, lead_id, type, date, notes, order_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		in.ID, in.LeadID, string(in.Type), in.Date, in.Notes, in.OrderAmount, in.CreatedAt, in.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// GetByID obtiene una interacción con el nombre del lead; (nil, nil) si no existe.
func (r *InteractionRepo) GetByID(ctx context.Context, id string) (*entity.Interaction, error) {
	row := r.q.QueryRow(ctx, selectInteractions+` WHERE i.id = $1`, id)
	in, err := scanInteraction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get interaction: %w", err)
	}
	return in, nil
}

const selectInteractions = `
	SELECT i.id, i.lead_id, l.name, i.type, i.date, i.notes, i.order_amount, i.created_at, i.updated_at
	FROM interactions i JOIN leads l ON l.id = i.lead_id`

// List filtra por lead; con Limit devuelve las más recientes primero.
func (r *InteractionRepo) List(ctx context.Context, filter repository.InteractionFilter) ([]*entity.Interaction, error) {
	var sb strings.Builder
	sb.WriteString(selectInteractions)
	args := []any{}
	if filter.LeadID != "" {
		args = append(args, filter.LeadID)
		sb.WriteString(fmt.Sprintf(" WHERE i.lead_id = $%d", len(args)))
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(fmt.Sprintf(" ORDER BY i.date DESC, i.id LIMIT $%d", len(args)))
	} else {
		sb.WriteString(" ORDER BY i.date, i.id")
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Interaction
	for rows.Next() {
		in, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

// Update actualiza la interacción; ErrNotFound si no existe.
func (r *InteractionRepo) Update(ctx context.Context, in *entity.Interaction) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE interactions SET type = $2, date = $3, notes = $4, order_amount = $5, updated_at = $6
		WHERE id = $1`,
		in.ID, string(in.Type), in.Date, in.Notes, in.OrderAmount, in.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update interaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una interacción; ErrNotFound si no existe.
func (r *InteractionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByLead elimina las interacciones del lead y devuelve cuántas borró.
func (r *InteractionRepo) DeleteByLead(ctx context.Context, leadID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM interactions WHERE lead_id = $1`, leadID)
	if err != nil {
		return 0, fmt.Errorf("delete interactions by lead: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SummaryByLead conteo de interacciones por lead, de mayor a menor.
func (r *InteractionRepo) SummaryByLead(ctx context.Context) ([]repository.InteractionSummaryResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.lead_id, l.name, count(*) AS interaction_count
		FROM interactions i JOIN leads l ON l.id = i.lead_id
		GROUP BY i.lead_id, l.name
		ORDER BY interaction_count DESC, l.name`)
	if err != nil {
		return nil, fmt.Errorf("summary interactions: %w", err)
	}
	defer rows.Close()
	out := []repository.InteractionSummaryResult{}
	for rows.Next() {
		var s repository.InteractionSummaryResult
		if err := rows.Scan(&s.LeadID, &s.LeadName, &s.InteractionCount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanInteraction(row pgxScanner) (*entity.Interaction, error) {
	var in entity.Interaction
	var typ string
	var amount decimal.NullDecimal
	err := row.Scan(&in.ID, &in.LeadID, &in.LeadName, &typ, &in.Date, &in.Notes, &amount, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return nil, err
	}
	in.Type = entity.InteractionType(typ)
	if amount.Valid {
		d := amount.Decimal
		in.OrderAmount = &d
	}
	return &in, nil
}
