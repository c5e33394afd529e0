// Package crm contiene los casos de uso de leads, agenda de llamadas, contactos e interacciones.
package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/leads-crm-api/internal/application/dto"
	"github.com/jhoicas/leads-crm-api/internal/application/validation"
	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
)

// LeadUseCase aplica las reglas de negocio de leads y su agenda de llamadas.
type LeadUseCase struct {
	leads        repository.LeadRepository
	contacts     repository.ContactRepository
	interactions repository.InteractionRepository
	users        repository.UserRepository
	tx           LeadTxRunner
	now          func() time.Time
}

// NewLeadUseCase construye el caso de uso. users puede ser nil (no se valida kam_id contra usuarios).
func NewLeadUseCase(
	leads repository.LeadRepository,
	contacts repository.ContactRepository,
	interactions repository.InteractionRepository,
	users repository.UserRepository,
	tx LeadTxRunner,
) *LeadUseCase {
	return &LeadUseCase{
		leads:        leads,
		contacts:     contacts,
		interactions: interactions,
		users:        users,
		tx:           tx,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj usado para call_due y timestamps.
func (uc *LeadUseCase) WithClock(now func() time.Time) *LeadUseCase {
	uc.now = now
	return uc
}

// List devuelve todos los leads; con expand incluye contactos e interacciones de cada uno.
func (uc *LeadUseCase) List(ctx context.Context, expand bool) ([]dto.LeadResponse, error) {
	list, err := uc.leads.List(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLeadResponse(l, now))
	}
	if !expand || len(out) == 0 {
		return out, nil
	}

	contacts, err := uc.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("leads: contactos: %w", err)
	}
	interactions, err := uc.interactions.List(ctx, repository.InteractionFilter{})
	if err != nil {
		return nil, fmt.Errorf("leads: interacciones: %w", err)
	}
	byLeadContacts := make(map[string][]dto.ContactResponse, len(out))
	for _, c := range contacts {
		byLeadContacts[c.LeadID] = append(byLeadContacts[c.LeadID], toContactResponse(c))
	}
	byLeadInteractions := make(map[string][]dto.InteractionResponse, len(out))
	for _, in := range interactions {
		byLeadInteractions[in.LeadID] = append(byLeadInteractions[in.LeadID], toInteractionResponse(in))
	}
	for i := range out {
		out[i].Contacts = byLeadContacts[out[i].ID]
		out[i].Interactions = byLeadInteractions[out[i].ID]
	}
	return out, nil
}

// Search busca leads cuyo nombre contiene query (sin distinguir mayúsculas).
func (uc *LeadUseCase) Search(ctx context.Context, query string) ([]dto.LeadResponse, error) {
	query = strings.TrimSpace(query)
	v := &domain.ValidationError{}
	v.RequireNonEmpty("query", query)
	if err := v.Err(); err != nil {
		return nil, err
	}
	list, err := uc.leads.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLeadResponse(l, now))
	}
	return out, nil
}

// GetByID obtiene un lead; con expand incluye sus contactos e interacciones.
func (uc *LeadUseCase) GetByID(ctx context.Context, id string, expand bool) (*dto.LeadResponse, error) {
	lead, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toLeadResponse(lead, uc.now())
	if !expand {
		return out, nil
	}
	contacts, err := uc.contacts.ListByLead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lead %s: contactos: %w", id, err)
	}
	interactions, err := uc.interactions.List(ctx, repository.InteractionFilter{LeadID: id})
	if err != nil {
		return nil, fmt.Errorf("lead %s: interacciones: %w", id, err)
	}
	out.Contacts = toContactResponses(contacts)
	out.Interactions = toInteractionResponses(interactions)
	return out, nil
}

// Create valida y persiste un lead nuevo. Status por defecto New y frecuencia Weekly.
func (uc *LeadUseCase) Create(ctx context.Context, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	lead, err := uc.buildLead(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := uc.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	return toLeadResponse(lead, uc.now()), nil
}

// Validate aplica a in las mismas reglas que Create sin persistir nada.
func (uc *LeadUseCase) Validate(ctx context.Context, in dto.CreateLeadRequest) error {
	_, err := uc.buildLead(ctx, in)
	return err
}

func (uc *LeadUseCase) buildLead(ctx context.Context, in dto.CreateLeadRequest) (*entity.Lead, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.KAMID = strings.TrimSpace(in.KAMID)
	v := &domain.ValidationError{}
	validation.Struct(v, in)

	now := uc.now()
	lead := &entity.Lead{
		ID:            domain.NewID(),
		Name:          in.Name,
		Address:       in.Address,
		Phone:         in.Phone,
		Email:         in.Email,
		Status:        entity.LeadStatus(in.Status),
		CallFrequency: entity.CallFrequency(in.CallFrequency),
		KAMID:         in.KAMID,
		CallSchedule:  []entity.CallScheduleEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if lead.Status == "" {
		lead.Status = entity.LeadStatusNew
	}
	if lead.CallFrequency == "" {
		lead.CallFrequency = entity.CallFrequencyWeekly
	}
	if t := dateField(v, "last_call_date", in.LastCallDate, now.Location()); !t.IsZero() {
		lead.LastCallDate = &t
	}
	for i, c := range in.CallSchedule {
		lead.CallSchedule = append(lead.CallSchedule, buildCall(v, fmt.Sprintf("call_schedule[%d].", i), c, now.Location()))
	}
	if err := uc.checkKAM(ctx, v, lead.KAMID); err != nil {
		return nil, err
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return lead, nil
}

// Update aplica los campos presentes en in y persiste. La agenda de llamadas no se modifica aquí.
func (uc *LeadUseCase) Update(ctx context.Context, id string, in dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	lead, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Name, in.Address, in.Phone, in.Email = trimmed(in.Name), trimmed(in.Address), trimmed(in.Phone), trimmed(in.Email)
	in.KAMID = trimmed(in.KAMID)
	v := &domain.ValidationError{}
	validation.Struct(v, in)
	if in.Name != nil {
		lead.Name = *in.Name
	}
	if in.Address != nil {
		lead.Address = *in.Address
	}
	if in.Phone != nil {
		lead.Phone = *in.Phone
	}
	if in.Email != nil {
		lead.Email = *in.Email
	}
	if in.Status != nil {
		lead.Status = entity.LeadStatus(*in.Status)
	}
	if in.CallFrequency != nil {
		lead.CallFrequency = entity.CallFrequency(*in.CallFrequency)
	}
	if in.LastCallDate != nil {
		if strings.TrimSpace(*in.LastCallDate) == "" {
			lead.LastCallDate = nil
		} else if t := dateField(v, "last_call_date", *in.LastCallDate, uc.now().Location()); !t.IsZero() {
			lead.LastCallDate = &t
		}
	}
	if in.KAMID != nil {
		lead.KAMID = *in.KAMID
		if err := uc.checkKAM(ctx, v, lead.KAMID); err != nil {
			return nil, err
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	lead.UpdatedAt = uc.now()
	if err := uc.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return toLeadResponse(lead, uc.now()), nil
}

// Delete elimina el lead junto con sus contactos e interacciones.
func (uc *LeadUseCase) Delete(ctx context.Context, id string) error {
	if err := checkIDParam(id); err != nil {
		return err
	}
	return uc.tx.RunLeadDeletion(ctx, func(
		leads repository.LeadRepository,
		contacts repository.ContactRepository,
		interactions repository.InteractionRepository,
	) error {
		if err := leads.Delete(ctx, id); err != nil {
			return err
		}
		if _, err := contacts.DeleteByLead(ctx, id); err != nil {
			return fmt.Errorf("lead %s: borrar contactos: %w", id, err)
		}
		if _, err := interactions.DeleteByLead(ctx, id); err != nil {
			return fmt.Errorf("lead %s: borrar interacciones: %w", id, err)
		}
		return nil
	})
}

// ListCalls devuelve la agenda de llamadas del lead.
func (uc *LeadUseCase) ListCalls(ctx context.Context, id string) ([]dto.CallResponse, error) {
	lead, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCallResponses(lead.CallSchedule), nil
}

// AddCall agrega una llamada a la agenda y devuelve la agenda resultante.
func (uc *LeadUseCase) AddCall(ctx context.Context, id string, in dto.CreateCallRequest) ([]dto.CallResponse, error) {
	if err := checkIDParam(id); err != nil {
		return nil, err
	}
	v := &domain.ValidationError{}
	validation.Struct(v, in)
	entry := buildCall(v, "", in, uc.now().Location())
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := uc.leads.AddCall(ctx, id, entry); err != nil {
		return nil, err
	}
	return uc.ListCalls(ctx, id)
}

// RemoveCall quita la llamada callID de la agenda. Si no existe la agenda queda igual.
func (uc *LeadUseCase) RemoveCall(ctx context.Context, id, callID string) ([]dto.CallResponse, error) {
	if err := checkIDParam(id, callID); err != nil {
		return nil, err
	}
	if err := uc.leads.RemoveCall(ctx, id, callID); err != nil {
		return nil, err
	}
	return uc.ListCalls(ctx, id)
}

// UpdateCall modifica una llamada de la agenda. Al marcarla Completed con fecha posterior
// a last_call_date, esa fecha pasa a ser la última llamada del lead.
func (uc *LeadUseCase) UpdateCall(ctx context.Context, id, callID string, in dto.UpdateCallRequest) ([]dto.CallResponse, error) {
	if err := checkIDParam(callID); err != nil {
		return nil, err
	}
	lead, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := lead.FindCall(callID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	call := lead.CallSchedule[idx]
	v := &domain.ValidationError{}
	validation.Struct(v, in)
	if in.Date != nil {
		call.Date = dateField(v, "date", *in.Date, uc.now().Location())
	}
	if in.Notes != nil {
		call.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Status != nil {
		call.Status = entity.CallStatus(*in.Status)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := uc.leads.UpdateCall(ctx, id, call); err != nil {
		return nil, err
	}
	lead.CallSchedule[idx] = call

	if call.Status == entity.CallStatusCompleted && (lead.LastCallDate == nil || call.Date.After(*lead.LastCallDate)) {
		d := call.Date
		lead.LastCallDate = &d
		lead.UpdatedAt = uc.now()
		if err := uc.leads.Update(ctx, lead); err != nil {
			return nil, fmt.Errorf("lead %s: actualizar last_call_date: %w", id, err)
		}
	}
	return toCallResponses(lead.CallSchedule), nil
}

// DueCalls devuelve los leads a los que hoy les corresponde una llamada.
func (uc *LeadUseCase) DueCalls(ctx context.Context) ([]dto.LeadResponse, error) {
	list, err := uc.leads.List(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.LeadResponse, 0)
	for _, l := range list {
		if l.IsCallDue(now) {
			out = append(out, *toLeadResponse(l, now))
		}
	}
	return out, nil
}

// load valida el id y obtiene el lead; ErrNotFound si no existe.
func (uc *LeadUseCase) load(ctx context.Context, id string) (*entity.Lead, error) {
	if err := checkIDParam(id); err != nil {
		return nil, err
	}
	lead, err := uc.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	return lead, nil
}

// checkKAM comprueba que kamID sea un usuario existente. Un fallo del repositorio se devuelve
// como error y no como error de validación.
func (uc *LeadUseCase) checkKAM(ctx context.Context, v *domain.ValidationError, kamID string) error {
	if kamID == "" || uc.users == nil {
		return nil
	}
	if err := domain.ValidateID(kamID); err != nil {
		v.Add("kam_id", "must be a valid identifier")
		return nil
	}
	u, err := uc.users.GetByID(ctx, kamID)
	if err != nil {
		return fmt.Errorf("lead: verificar kam %s: %w", kamID, err)
	}
	if u == nil {
		v.Add("kam_id", "user not found")
	}
	return nil
}

// buildCall construye una entrada de agenda nueva; prefix antecede los nombres de campo en errores.
// El estado ya viene validado por los tags del DTO.
func buildCall(v *domain.ValidationError, prefix string, in dto.CreateCallRequest, loc *time.Location) entity.CallScheduleEntry {
	entry := entity.CallScheduleEntry{
		ID:     domain.NewID(),
		Date:   dateField(v, prefix+"date", in.Date, loc),
		Notes:  strings.TrimSpace(in.Notes),
		Status: entity.CallStatus(in.Status),
	}
	if entry.Status == "" {
		entry.Status = entity.CallStatusScheduled
	}
	return entry
}
