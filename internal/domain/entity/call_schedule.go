package entity

import "time"

// CallStatus estado de una llamada agendada.
type CallStatus string

const (
	CallStatusScheduled CallStatus = "Scheduled"
	CallStatusCompleted CallStatus = "Completed"
	CallStatusMissed    CallStatus = "Missed"
)

// Valid indica si el estado pertenece a la enumeración.
func (s CallStatus) Valid() bool {
	switch s {
	case CallStatusScheduled, CallStatusCompleted, CallStatusMissed:
		return true
	}
	return false
}

// CallScheduleEntry llamada planificada o realizada, embebida en un Lead.
type CallScheduleEntry struct {
	ID     string
	Date   time.Time
	Notes  string
	Status CallStatus
}
