package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/leads-crm-api/internal/application/dto"
)

// PerformanceReportGenerator puerto de salida que renderiza el reporte de desempeño.
type PerformanceReportGenerator interface {
	GeneratePerformanceReport(ctx context.Context, report *dto.PerformanceReportDTO) ([]byte, error)
}

// ReportUseCase genera el reporte de desempeño descargable (PDF).
type ReportUseCase struct {
	dashboard *DashboardUseCase
	generator PerformanceReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *DashboardUseCase, generator PerformanceReportGenerator) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator}
}

// DownloadPerformanceReport devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReportUseCase) DownloadPerformanceReport(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	report, err := uc.dashboard.Performance(ctx)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GeneratePerformanceReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	filename = fmt.Sprintf("desempeno-leads-%s.pdf", report.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}
