package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/leads-crm-api/internal/application/analytics"
)

// DashboardHandler maneja métricas, resumen de interacciones y desempeño de leads.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	report *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, report *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report}
}

// Metrics godoc
// @Summary      Métricas de leads
// @Description  total_leads, new_leads, upcoming_calls y etiqueta global de desempeño.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.LeadMetricsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/leads/metrics [get]
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.uc.Metrics(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// InteractionSummary godoc
// @Summary      Interacciones por lead
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.InteractionSummaryDTO
// @Router       /api/interactions/dashboard [get]
func (h *DashboardHandler) InteractionSummary(c *fiber.Ctx) error {
	out, err := h.uc.InteractionSummary(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Performance godoc
// @Summary      Desempeño por lead
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.PerformanceReportDTO
// @Router       /api/leads/performance [get]
func (h *DashboardHandler) Performance(c *fiber.Ctx) error {
	out, err := h.uc.Performance(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// PerformanceReport godoc
// @Summary      Reporte de desempeño en PDF
// @Tags         dashboard
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/leads/performance/report [get]
func (h *DashboardHandler) PerformanceReport(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.DownloadPerformanceReport(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
