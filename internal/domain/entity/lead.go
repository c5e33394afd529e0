package entity

import "time"

// LeadStatus estado comercial de un lead.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "New"
	LeadStatusContacted  LeadStatus = "Contacted"
	LeadStatusInterested LeadStatus = "Interested"
	LeadStatusClosed     LeadStatus = "Closed"
)

// Valid indica si el estado pertenece a la enumeración.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusInterested, LeadStatusClosed:
		return true
	}
	return false
}

// CallFrequency frecuencia con la que el KAM debe llamar al lead.
type CallFrequency string

const (
	CallFrequencyDaily   CallFrequency = "Daily"
	CallFrequencyWeekly  CallFrequency = "Weekly"
	CallFrequencyMonthly CallFrequency = "Monthly"
)

// Valid indica si la frecuencia pertenece a la enumeración.
func (f CallFrequency) Valid() bool {
	return f.IntervalDays() > 0
}

// IntervalDays días mínimos entre llamadas; 0 si la frecuencia no es válida.
func (f CallFrequency) IntervalDays() int {
	switch f {
	case CallFrequencyDaily:
		return 1
	case CallFrequencyWeekly:
		return 7
	case CallFrequencyMonthly:
		return 30
	}
	return 0
}

// Lead representa un restaurante (cuenta potencial o existente) en seguimiento comercial.
// CallSchedule es propiedad exclusiva del lead: no tiene ciclo de vida propio.
type Lead struct {
	ID            string
	Name          string
	Address       string
	Phone         string
	Email         string
	Status        LeadStatus
	CallFrequency CallFrequency
	LastCallDate  *time.Time
	KAMID         string // usuario KAM asignado (opcional)
	CallSchedule  []CallScheduleEntry
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsCallDue indica si al lead le corresponde una llamada en la fecha de today.
// Compara días calendario completos en la zona horaria de today.
func (l *Lead) IsCallDue(today time.Time) bool {
	if l == nil || l.LastCallDate == nil {
		return false
	}
	interval := l.CallFrequency.IntervalDays()
	if interval == 0 {
		return false
	}
	return DaysBetween(*l.LastCallDate, today) >= interval
}

// FindCall devuelve la posición de la llamada con id callID o -1.
func (l *Lead) FindCall(callID string) int {
	for i, c := range l.CallSchedule {
		if c.ID == callID {
			return i
		}
	}
	return -1
}

// DaysBetween número de días calendario completos entre from y to (negativo si to es anterior).
func DaysBetween(from, to time.Time) int {
	loc := to.Location()
	f := from.In(loc)
	a := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
