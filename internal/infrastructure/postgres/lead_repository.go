package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación de LeadRepository sobre PostgreSQL (usable con pool o tx).
// La agenda de llamadas vive en lead_calls y se ordena por seq (orden de inserción).
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

const leadColumns = `id, name, address, phone, email, status, call_frequency, last_call_date, kam_id, created_at, updated_at`

// Create inserta el lead y su agenda inicial en una sola transacción: si falla una llamada no queda el lead.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = tx.Exec(ctx, query,
		lead.ID, lead.Name, lead.Address, lead.Phone, lead.Email,
		string(lead.Status), string(lead.CallFrequency), lead.LastCallDate, nullable(lead.KAMID),
		lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: kam_id no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	inTx := NewLeadRepository(tx)
	for _, c := range lead.CallSchedule {
		if err := inTx.insertCall(ctx, lead.ID, c); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un lead con su agenda; (nil, nil) si no existe.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	calls, err := r.callsFor(ctx, `WHERE lead_id = $1`, id)
	if err != nil {
		return nil, err
	}
	lead.CallSchedule = calls[id]
	if lead.CallSchedule == nil {
		lead.CallSchedule = []entity.CallScheduleEntry{}
	}
	return lead, nil
}

// List devuelve todos los leads ordenados por fecha de creación.
func (r *LeadRepo) List(ctx context.Context) ([]*entity.Lead, error) {
	return r.listWhere(ctx, `ORDER BY created_at, id`)
}

// Search busca por nombre con ILIKE.
func (r *LeadRepo) Search(ctx context.Context, query string) ([]*entity.Lead, error) {
	return r.listWhere(ctx, `WHERE name ILIKE '%' || $1 || '%' ORDER BY name, id`, query)
}

func (r *LeadRepo) listWhere(ctx context.Context, clause string, args ...any) ([]*entity.Lead, error) {
	rows, err := r.q.Query(ctx, `SELECT `+leadColumns+` FROM leads `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, 0, len(list))
	for _, l := range list {
		ids = append(ids, l.ID)
	}
	calls, err := r.callsFor(ctx, `WHERE lead_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range list {
		l.CallSchedule = calls[l.ID]
		if l.CallSchedule == nil {
			l.CallSchedule = []entity.CallScheduleEntry{}
		}
	}
	return list, nil
}

// Update persiste los campos escalares del lead. La agenda no se toca.
func (r *LeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET name = $2, address = $3, phone = $4, email = $5, status = $6,
			call_frequency = $7, last_call_date = $8, kam_id = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		lead.ID, lead.Name, lead.Address, lead.Phone, lead.Email,
		string(lead.Status), string(lead.CallFrequency), lead.LastCallDate, nullable(lead.KAMID),
		lead.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: kam_id no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el lead; lead_calls, contacts e interactions caen por ON DELETE CASCADE.
func (r *LeadRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Agenda de llamadas ────────────────────────────────────────────────────────

// AddCall inserta la llamada; ErrNotFound si el lead no existe.
func (r *LeadRepo) AddCall(ctx context.Context, leadID string, call entity.CallScheduleEntry) error {
	if err := r.insertCall(ctx, leadID, call); err != nil {
		return err
	}
	return r.touch(ctx, leadID)
}

// RemoveCall elimina la llamada si existe; ErrNotFound solo si el lead no existe.
func (r *LeadRepo) RemoveCall(ctx context.Context, leadID, callID string) error {
	if err := r.touch(ctx, leadID); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM lead_calls WHERE lead_id = $1 AND id = $2`, leadID, callID); err != nil {
		return fmt.Errorf("delete lead_call: %w", err)
	}
	return nil
}

// UpdateCall reemplaza fecha, notas y estado de la llamada; ErrNotFound si no existe.
func (r *LeadRepo) UpdateCall(ctx context.Context, leadID string, call entity.CallScheduleEntry) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE lead_calls SET date = $3, notes = $4, status = $5 WHERE lead_id = $1 AND id = $2`,
		leadID, call.ID, call.Date, call.Notes, string(call.Status),
	)
	if err != nil {
		return fmt.Errorf("update lead_call: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.touch(ctx, leadID)
}

func (r *LeadRepo) insertCall(ctx context.Context, leadID string, c entity.CallScheduleEntry) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO lead_calls (id, lead_id, date, notes, status) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, leadID, c.Date, c.Notes, string(c.Status),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert lead_call: %w", err)
	}
	return nil
}

// touch actualiza updated_at del lead; ErrNotFound si no existe.
func (r *LeadRepo) touch(ctx context.Context, leadID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE leads SET updated_at = now() WHERE id = $1`, leadID)
	if err != nil {
		return fmt.Errorf("touch lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// callsFor carga las llamadas agrupadas por lead_id.
func (r *LeadRepo) callsFor(ctx context.Context, where string, args ...any) (map[string][]entity.CallScheduleEntry, error) {
	rows, err := r.q.Query(ctx, `SELECT lead_id, id, date, notes, status FROM lead_calls `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("list lead_calls: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.CallScheduleEntry)
	for rows.Next() {
		var leadID, status string
		var c entity.CallScheduleEntry
		if err := rows.Scan(&leadID, &c.ID, &c.Date, &c.Notes, &status); err != nil {
			return nil, fmt.Errorf("scan lead_call: %w", err)
		}
		c.Status = entity.CallStatus(status)
		out[leadID] = append(out[leadID], c)
	}
	return out, rows.Err()
}

// ── Métricas ──────────────────────────────────────────────────────────────────

// Count total de leads.
func (r *LeadRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

// CountByStatus leads con el estado indicado.
func (r *LeadRepo) CountByStatus(ctx context.Context, status entity.LeadStatus) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM leads WHERE status = $1`, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads by status: %w", err)
	}
	return n, nil
}

// CountCallsByStatus llamadas con el estado indicado en todos los leads.
func (r *LeadRepo) CountCallsByStatus(ctx context.Context, status entity.CallStatus) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM lead_calls WHERE status = $1`, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lead_calls by status: %w", err)
	}
	return n, nil
}

func scanLead(row pgxScanner) (*entity.Lead, error) {
	var l entity.Lead
	var status, freq string
	var kamID *string
	err := row.Scan(
		&l.ID, &l.Name, &l.Address, &l.Phone, &l.Email, &status, &freq,
		&l.LastCallDate, &kamID, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Status = entity.LeadStatus(status)
	l.CallFrequency = entity.CallFrequency(freq)
	l.KAMID = derefString(kamID)
	return &l, nil
}
