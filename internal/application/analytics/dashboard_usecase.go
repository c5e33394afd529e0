// Package analytics contiene los casos de uso del dashboard comercial:
// métricas de leads, resumen de interacciones y desempeño por lead.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/leads-crm-api/internal/application/dto"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/performance"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
	"github.com/jhoicas/leads-crm-api/pkg/textnorm"
)

// DashboardUseCase genera las métricas y reportes de desempeño.
//
// Fuente de datos: LeadRepository e InteractionRepository (consultas read-only).
type DashboardUseCase struct {
	leads        repository.LeadRepository
	interactions repository.InteractionRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(leads repository.LeadRepository, interactions repository.InteractionRepository) *DashboardUseCase {
	return &DashboardUseCase{leads: leads, interactions: interactions, now: time.Now}
}

// WithClock reemplaza el reloj usado para la ventana de interacciones recientes.
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Metrics construye el LeadMetricsDTO.
//
// Tres consultas en paralelo:
//  1. Count                        → TotalLeads
//  2. CountByStatus(New)           → NewLeads
//  3. CountCallsByStatus(Scheduled) → UpcomingCalls
func (uc *DashboardUseCase) Metrics(ctx context.Context) (*dto.LeadMetricsDTO, error) {
	type countResult struct {
		n   int64
		err error
	}
	totalCh := make(chan countResult, 1)
	newCh := make(chan countResult, 1)
	callsCh := make(chan countResult, 1)

	go func() {
		n, err := uc.leads.Count(ctx)
		totalCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.leads.CountByStatus(ctx, entity.LeadStatusNew)
		newCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.leads.CountCallsByStatus(ctx, entity.CallStatusScheduled)
		callsCh <- countResult{n, err}
	}()

	total := <-totalCh
	newLeads := <-newCh
	calls := <-callsCh

	if total.err != nil {
		return nil, fmt.Errorf("métricas: total de leads: %w", total.err)
	}
	if newLeads.err != nil {
		return nil, fmt.Errorf("métricas: leads nuevos: %w", newLeads.err)
	}
	if calls.err != nil {
		return nil, fmt.Errorf("métricas: llamadas agendadas: %w", calls.err)
	}

	return &dto.LeadMetricsDTO{
		TotalLeads:    total.n,
		NewLeads:      newLeads.n,
		UpcomingCalls: calls.n,
		Performance:   performance.LeadsPerformanceLabel(total.n),
	}, nil
}

// InteractionSummary conteo de interacciones por lead (solo leads con al menos una).
func (uc *DashboardUseCase) InteractionSummary(ctx context.Context) ([]dto.InteractionSummaryDTO, error) {
	rows, err := uc.interactions.SummaryByLead(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InteractionSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InteractionSummaryDTO{
			LeadID:           r.LeadID,
			LeadName:         r.LeadName,
			InteractionCount: r.InteractionCount,
		})
	}
	return out, nil
}

// Performance clasifica cada lead según sus interacciones recientes y el total de pedidos.
// Las filas se ordenan por nombre con la colación del español.
func (uc *DashboardUseCase) Performance(ctx context.Context) (*dto.PerformanceReportDTO, error) {
	type leadsResult struct {
		list []*entity.Lead
		err  error
	}
	type interactionsResult struct {
		list []*entity.Interaction
		err  error
	}
	leadsCh := make(chan leadsResult, 1)
	interactionsCh := make(chan interactionsResult, 1)

	go func() {
		list, err := uc.leads.List(ctx)
		leadsCh <- leadsResult{list, err}
	}()
	go func() {
		list, err := uc.interactions.List(ctx, repository.InteractionFilter{})
		interactionsCh <- interactionsResult{list, err}
	}()

	leads := <-leadsCh
	interactions := <-interactionsCh
	if leads.err != nil {
		return nil, fmt.Errorf("desempeño: leads: %w", leads.err)
	}
	if interactions.err != nil {
		return nil, fmt.Errorf("desempeño: interacciones: %w", interactions.err)
	}

	byLead := make(map[string][]*entity.Interaction, len(leads.list))
	for _, in := range interactions.list {
		byLead[in.LeadID] = append(byLead[in.LeadID], in)
	}

	now := uc.now()
	report := &dto.PerformanceReportDTO{
		TotalLeads:  len(leads.list),
		Leads:       make([]dto.LeadPerformanceDTO, 0, len(leads.list)),
		GeneratedAt: now,
	}
	for _, l := range leads.list {
		snap := performance.Summarize(byLead[l.ID], now)
		label := performance.Classify(snap)
		switch label {
		case performance.WellPerforming:
			report.WellPerforming++
		case performance.Average:
			report.Average++
		default:
			report.Underperforming++
		}
		report.Leads = append(report.Leads, dto.LeadPerformanceDTO{
			LeadID:             l.ID,
			Name:               l.Name,
			RecentInteractions: snap.RecentInteractions,
			TotalInteractions:  len(byLead[l.ID]),
			TotalOrders:        snap.TotalOrders,
			Performance:        string(label),
		})
	}

	col := textnorm.Collator()
	sort.SliceStable(report.Leads, func(i, j int) bool {
		return col.CompareString(report.Leads[i].Name, report.Leads[j].Name) < 0
	})
	return report, nil
}
