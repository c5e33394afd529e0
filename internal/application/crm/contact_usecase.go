package crm

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/leads-crm-api/internal/application/dto"
	"github.com/jhoicas/leads-crm-api/internal/application/validation"
	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

// ContactUseCase casos de uso de contactos de un lead.
type ContactUseCase struct {
	contacts repository.ContactRepository
	leads    repository.LeadRepository
	now      func() time.Time
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(contacts repository.ContactRepository, leads repository.LeadRepository) *ContactUseCase {
	return &ContactUseCase{contacts: contacts, leads: leads, now: time.Now}
}

// ListByLead lista los contactos del lead; lista vacía si no tiene.
func (uc *ContactUseCase) ListByLead(ctx context.Context, leadID string) ([]dto.ContactResponse, error) {
	if err := checkIDParam(leadID); err != nil {
		return nil, err
	}
	list, err := uc.contacts.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	return toContactResponses(list), nil
}

// Create crea un contacto para un lead existente.
func (uc *ContactUseCase) Create(ctx context.Context, leadID string, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if err := checkIDParam(leadID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	v := &domain.ValidationError{}
	validation.Struct(v, in)
	if err := v.Err(); err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Contact{
		ID:        domain.NewID(),
		LeadID:    leadID,
		Name:      in.Name,
		Role:      in.Role,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	lead, err := uc.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toContactResponse(c)
	return &out, nil
}

// Update aplica los campos presentes en in.
func (uc *ContactUseCase) Update(ctx context.Context, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	if err := checkIDParam(id); err != nil {
		return nil, err
	}
	in.Name, in.Role, in.Phone, in.Email = trimmed(in.Name), trimmed(in.Role), trimmed(in.Phone), trimmed(in.Email)
	v := &domain.ValidationError{}
	validation.Struct(v, in)
	if err := v.Err(); err != nil {
		return nil, err
	}
	c, err := uc.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Role != nil {
		c.Role = *in.Role
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	c.UpdatedAt = uc.now()
	if err := uc.contacts.Update(ctx, c); err != nil {
		return nil, err
	}
	out := toContactResponse(c)
	return &out, nil
}

// Delete elimina un contacto.
func (uc *ContactUseCase) Delete(ctx context.Context, id string) error {
	if err := checkIDParam(id); err != nil {
		return err
	}
	return uc.contacts.Delete(ctx, id)
}
