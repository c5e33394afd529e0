package crm

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/leads-crm-api/internal/application/dto"
	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
)

// Formatos de fecha aceptados en los cuerpos de petición.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// parseDate interpreta value. Las fechas sin zona (incluida YYYY-MM-DD) se toman en loc;
// los timestamps RFC 3339 conservan su offset.
func parseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", value)
}

// dateField convierte value y registra en v si el formato no es aceptado.
// Un valor vacío devuelve el instante cero: la obligatoriedad la cubren los tags del DTO.
func dateField(v *domain.ValidationError, field, value string, loc *time.Location) time.Time {
	if strings.TrimSpace(value) == "" {
		return time.Time{}
	}
	t, err := parseDate(value, loc)
	if err != nil {
		v.Add(field, "must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return time.Time{}
	}
	return t
}

func toCallResponses(calls []entity.CallScheduleEntry) []dto.CallResponse {
	out := make([]dto.CallResponse, 0, len(calls))
	for _, c := range calls {
		out = append(out, dto.CallResponse{
			ID:     c.ID,
			Date:   c.Date,
			Notes:  c.Notes,
			Status: string(c.Status),
		})
	}
	return out
}

func toLeadResponse(l *entity.Lead, now time.Time) *dto.LeadResponse {
	if l == nil {
		return nil
	}
	return &dto.LeadResponse{
		ID:            l.ID,
		Name:          l.Name,
		Address:       l.Address,
		Phone:         l.Phone,
		Email:         l.Email,
		Status:        string(l.Status),
		CallFrequency: string(l.CallFrequency),
		LastCallDate:  l.LastCallDate,
		KAMID:         l.KAMID,
		CallDue:       l.IsCallDue(now),
		CallSchedule:  toCallResponses(l.CallSchedule),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toContactResponse(c *entity.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:        c.ID,
		LeadID:    c.LeadID,
		Name:      c.Name,
		Role:      c.Role,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toContactResponses(list []*entity.Contact) []dto.ContactResponse {
	out := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContactResponse(c))
	}
	return out
}

func toInteractionResponse(in *entity.Interaction) dto.InteractionResponse {
	return dto.InteractionResponse{
		ID:          in.ID,
		LeadID:      in.LeadID,
		LeadName:    in.LeadName,
		Type:        string(in.Type),
		Date:        in.Date,
		Notes:       in.Notes,
		OrderAmount: in.OrderAmount,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
}

func toInteractionResponses(list []*entity.Interaction) []dto.InteractionResponse {
	out := make([]dto.InteractionResponse, 0, len(list))
	for _, in := range list {
		out = append(out, toInteractionResponse(in))
	}
	return out
}
