package repository

import (
	"context"

	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (KAM / Admin).
// Create y Update devuelven domain.ErrEmailAlreadyExists si el email ya está en uso.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
