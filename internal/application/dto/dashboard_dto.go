package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeadMetricsDTO respuesta de GET /api/leads/metrics.
type LeadMetricsDTO struct {
	TotalLeads    int64  `json:"total_leads"`
	NewLeads      int64  `json:"new_leads"`      // leads con status New
	UpcomingCalls int64  `json:"upcoming_calls"` // entradas de agenda Scheduled en todos los leads
	Performance   string `json:"performance"`    // "Good" | "Needs Improvement"
}

// InteractionSummaryDTO fila de GET /api/interactions/dashboard.
type InteractionSummaryDTO struct {
	LeadID           string `json:"lead_id"`
	LeadName         string `json:"lead_name"`
	InteractionCount int64  `json:"interaction_count"`
}

// LeadPerformanceDTO desempeño de un lead.
type LeadPerformanceDTO struct {
	LeadID             string          `json:"lead_id"`
	Name               string          `json:"name"`
	RecentInteractions int             `json:"recent_interactions"` // últimos 30 días
	TotalInteractions  int             `json:"total_interactions"`
	TotalOrders        decimal.Decimal `json:"total_orders"`
	Performance        string          `json:"performance"` // Well-Performing | Average | Underperforming
}

// PerformanceReportDTO respuesta de GET /api/leads/performance.
type PerformanceReportDTO struct {
	TotalLeads      int                  `json:"total_leads"`
	WellPerforming  int                  `json:"well_performing"`
	Average         int                  `json:"average"`
	Underperforming int                  `json:"underperforming"`
	Leads           []LeadPerformanceDTO `json:"leads"`
	GeneratedAt     time.Time            `json:"generated_at"`
}
