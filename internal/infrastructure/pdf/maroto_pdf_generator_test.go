package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-crm-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0.00":       "0.00",
		"999":        "999",
		"25000.50":   "25,000.50",
		"1000000.00": "1,000,000.00",
		"-1234":      "-1,234",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}

func TestGeneratePerformanceReport_DevuelvePDF(t *testing.T) {
	report := &dto.PerformanceReportDTO{
		TotalLeads:     1,
		WellPerforming: 1,
		Leads: []dto.LeadPerformanceDTO{{
			LeadID: "l-1", Name: "Panadería Ñuñoa", RecentInteractions: 4, TotalInteractions: 9,
			TotalOrders: decimal.RequireFromString("820.00"), Performance: "Well-Performing",
		}},
		GeneratedAt: time.Date(2026, 5, 20, 8, 30, 0, 0, time.UTC),
	}

	out, err := NewMarotoPDFGenerator("leads-crm").GeneratePerformanceReport(context.Background(), report)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePerformanceReport_SinLeads(t *testing.T) {
	out, err := NewMarotoPDFGenerator("leads-crm").GeneratePerformanceReport(context.Background(), &dto.PerformanceReportDTO{})

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
