package mongodb

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
)

// Nombres de colecciones.
const (
	colLeads        = "leads"
	colContacts     = "contacts"
	colInteractions = "interactions"
	colUsers        = "users"
)

// leadDoc documento de la colección leads; la agenda va embebida.
type leadDoc struct {
	ID            string     `bson:"_id"`
	Name          string     `bson:"name"`
	Address       string     `bson:"address"`
	Phone         string     `bson:"phone"`
	Email         string     `bson:"email"`
	Status        string     `bson:"status"`
	CallFrequency string     `bson:"call_frequency"`
	LastCallDate  *time.Time `bson:"last_call_date"`
	KAMID         string     `bson:"kam_id,omitempty"`
	CallSchedule  []callDoc  `bson:"call_schedule"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at"`
}

type callDoc struct {
	ID     string    `bson:"_id"`
	Date   time.Time `bson:"date"`
	Notes  string    `bson:"notes"`
	Status string    `bson:"status"`
}

type contactDoc struct {
	ID        string    `bson:"_id"`
	LeadID    string    `bson:"lead_id"`
	Name      string    `bson:"name"`
	Role      string    `bson:"role"`
	Phone     string    `bson:"phone"`
	Email     string    `bson:"email"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// interactionDoc documento de interactions. LeadName solo llega desde $lookup.
type interactionDoc struct {
	ID          string                `bson:"_id"`
	LeadID      string                `bson:"lead_id"`
	LeadName    string                `bson:"lead_name,omitempty"`
	Type        string                `bson:"type"`
	Date        time.Time             `bson:"date"`
	Notes       string                `bson:"notes"`
	OrderAmount *primitive.Decimal128 `bson:"order_amount,omitempty"`
	CreatedAt   time.Time             `bson:"created_at"`
	UpdatedAt   time.Time             `bson:"updated_at"`
}

type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Name         string    `bson:"name"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// ── Lead ──────────────────────────────────────────────────────────────────────

func toLeadDoc(l *entity.Lead) leadDoc {
	calls := make([]callDoc, 0, len(l.CallSchedule))
	for _, c := range l.CallSchedule {
		calls = append(calls, toCallDoc(c))
	}
	return leadDoc{
		ID:            l.ID,
		Name:          l.Name,
		Address:       l.Address,
		Phone:         l.Phone,
		Email:         l.Email,
		Status:        string(l.Status),
		CallFrequency: string(l.CallFrequency),
		LastCallDate:  l.LastCallDate,
		KAMID:         l.KAMID,
		CallSchedule:  calls,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func (d leadDoc) toEntity() *entity.Lead {
	calls := make([]entity.CallScheduleEntry, 0, len(d.CallSchedule))
	for _, c := range d.CallSchedule {
		calls = append(calls, c.toEntity())
	}
	return &entity.Lead{
		ID:            d.ID,
		Name:          d.Name,
		Address:       d.Address,
		Phone:         d.Phone,
		Email:         d.Email,
		Status:        entity.LeadStatus(d.Status),
		CallFrequency: entity.CallFrequency(d.CallFrequency),
		LastCallDate:  d.LastCallDate,
		KAMID:         d.KAMID,
		CallSchedule:  calls,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toCallDoc(c entity.CallScheduleEntry) callDoc {
	return callDoc{ID: c.ID, Date: c.Date, Notes: c.Notes, Status: string(c.Status)}
}

func (d callDoc) toEntity() entity.CallScheduleEntry {
	return entity.CallScheduleEntry{ID: d.ID, Date: d.Date, Notes: d.Notes, Status: entity.CallStatus(d.Status)}
}

// ── Contact ───────────────────────────────────────────────────────────────────

func toContactDoc(c *entity.Contact) contactDoc {
	return contactDoc{
		ID: c.ID, LeadID: c.LeadID, Name: c.Name, Role: c.Role, Phone: c.Phone, Email: c.Email,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (d contactDoc) toEntity() *entity.Contact {
	return &entity.Contact{
		ID: d.ID, LeadID: d.LeadID, Name: d.Name, Role: d.Role, Phone: d.Phone, Email: d.Email,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

// ── Interaction ───────────────────────────────────────────────────────────────

func toInteractionDoc(in *entity.Interaction) (interactionDoc, error) {
	doc := interactionDoc{
		ID:        in.ID,
		LeadID:    in.LeadID,
		Type:      string(in.Type),
		Date:      in.Date,
		Notes:     in.Notes,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
	if in.OrderAmount != nil {
		d128, err := toDecimal128(*in.OrderAmount)
		if err != nil {
			return interactionDoc{}, err
		}
		doc.OrderAmount = &d128
	}
	return doc, nil
}

func (d interactionDoc) toEntity() (*entity.Interaction, error) {
	in := &entity.Interaction{
		ID:        d.ID,
		LeadID:    d.LeadID,
		LeadName:  d.LeadName,
		Type:      entity.InteractionType(d.Type),
		Date:      d.Date,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.OrderAmount != nil {
		amount, err := fromDecimal128(*d.OrderAmount)
		if err != nil {
			return nil, err
		}
		in.OrderAmount = &amount
	}
	return in, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

// ── User ──────────────────────────────────────────────────────────────────────

func toUserDoc(u *entity.User) userDoc {
	return userDoc{
		ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash, Name: u.Name, Role: u.Role,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (d userDoc) toEntity() *entity.User {
	return &entity.User{
		ID: d.ID, Email: d.Email, PasswordHash: d.PasswordHash, Name: d.Name, Role: d.Role,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}
