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

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository sobre PostgreSQL.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

const contactColumns = `id, lead_id, name, role, phone, email, created_at, updated_at`

// Create persiste un contacto; ErrNotFound si el lead no existe.
func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contacts (`+contactColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.LeadID, c.Name, c.Role, c.Phone, c.Email, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetByID obtiene un contacto; (nil, nil) si no existe.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	c, err := scanContact(r.q.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// List todos los contactos.
func (r *ContactRepo) List(ctx context.Context) ([]*entity.Contact, error) {
	return r.list(ctx, `ORDER BY created_at, id`)
}

// ListByLead contactos de un lead.
func (r *ContactRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Contact, error) {
	return r.list(ctx, `WHERE lead_id = $1 ORDER BY created_at, id`, leadID)
}

func (r *ContactRepo) list(ctx context.Context, clause string, args ...any) ([]*entity.Contact, error) {
	rows, err := r.q.Query(ctx, `SELECT `+contactColumns+` FROM contacts `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un contacto; ErrNotFound si no existe.
func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE contacts SET name = $2, role = $3, phone = $4, email = $5, updated_at = $6
		WHERE id = $1`,
		c.ID, c.Name, c.Role, c.Phone, c.Email, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un contacto; ErrNotFound si no existe.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByLead elimina los contactos del lead y devuelve cuántos borró.
func (r *ContactRepo) DeleteByLead(ctx context.Context, leadID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE lead_id = $1`, leadID)
	if err != nil {
		return 0, fmt.Errorf("delete contacts by lead: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanContact(row pgxScanner) (*entity.Contact, error) {
	var c entity.Contact
	if err := row.Scan(&c.ID, &c.LeadID, &c.Name, &c.Role, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
