package repository

import (
	"context"

	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para Contact.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	List(ctx context.Context) ([]*entity.Contact, error)
	ListByLead(ctx context.Context, leadID string) ([]*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id string) error
	DeleteByLead(ctx context.Context, leadID string) (int64, error)
}
