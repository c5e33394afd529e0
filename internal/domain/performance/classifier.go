// Package performance clasifica el desempeño comercial de un lead a partir de sus interacciones.
package performance

import (
	"time"

	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Label etiqueta de desempeño de un lead.
type Label string

const (
	WellPerforming  Label = "Well-Performing"
	Average         Label = "Average"
	Underperforming Label = "Underperforming"
)

// Umbrales de clasificación.
const (
	RecentWindowDays    = 30
	WellRecentThreshold = 3
)

var (
	wellOrderThreshold  = decimal.NewFromInt(500)
	underOrderThreshold = decimal.NewFromInt(100)
)

// Snapshot cifras de un lead usadas para clasificarlo.
type Snapshot struct {
	RecentInteractions int
	TotalOrders        decimal.Decimal
}

// Summarize calcula las cifras de un lead a la fecha now.
// Una interacción es reciente si ocurrió hace 30 días completos o menos.
// TotalOrders suma OrderAmount de las interacciones de tipo Order.
func Summarize(interactions []*entity.Interaction, now time.Time) Snapshot {
	s := Snapshot{TotalOrders: decimal.Zero}
	for _, in := range interactions {
		if in == nil {
			continue
		}
		if entity.DaysBetween(in.Date, now) <= RecentWindowDays {
			s.RecentInteractions++
		}
		if in.Type == entity.InteractionOrder && in.OrderAmount != nil {
			s.TotalOrders = s.TotalOrders.Add(*in.OrderAmount)
		}
	}
	return s
}

// Classify aplica las reglas en orden: Well-Performing se evalúa antes que Underperforming.
func Classify(s Snapshot) Label {
	if s.RecentInteractions > WellRecentThreshold || s.TotalOrders.GreaterThan(wellOrderThreshold) {
		return WellPerforming
	}
	if s.RecentInteractions == 0 || s.TotalOrders.LessThan(underOrderThreshold) {
		return Underperforming
	}
	return Average
}

// LeadsPerformanceLabel etiqueta global del tablero: "Good" con más de 10 leads.
func LeadsPerformanceLabel(totalLeads int64) string {
	if totalLeads > 10 {
		return "Good"
	}
	return "Needs Improvement"
}
