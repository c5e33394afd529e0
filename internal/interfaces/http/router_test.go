package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/leads-crm-api/internal/application/analytics"
	"github.com/jhoicas/leads-crm-api/internal/application/auth"
	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/application/dto"
	"github.com/jhoicas/leads-crm-api/internal/application/usecase"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository/mocks"
	apphttp "github.com/jhoicas/leads-crm-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

const (
	leadID = "11111111-1111-1111-1111-111111111111"
	callID = "22222222-2222-2222-2222-222222222222"
)

type repos struct {
	leads        *mocks.LeadRepository
	contacts     *mocks.ContactRepository
	interactions *mocks.InteractionRepository
	users        *mocks.UserRepository
}

type directRunner struct{ r repos }

func (d directRunner) RunLeadDeletion(_ context.Context, fn func(
	repository.LeadRepository, repository.ContactRepository, repository.InteractionRepository,
) error) error {
	return fn(d.r.leads, d.r.contacts, d.r.interactions)
}

type fakePDF struct{}

func (fakePDF) GeneratePerformanceReport(context.Context, *dto.PerformanceReportDTO) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

// newTestApp arma la aplicación completa (middlewares + router) sobre mocks de repositorio.
func newTestApp(authEnabled bool) (*fiber.App, repos) {
	r := repos{
		leads:        new(mocks.LeadRepository),
		contacts:     new(mocks.ContactRepository),
		interactions: new(mocks.InteractionRepository),
		users:        new(mocks.UserRepository),
	}
	clock := func() time.Time { return fixedNow }
	dashboardUC := appanalytics.NewDashboardUseCase(r.leads, r.interactions).WithClock(clock)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger())
	apphttp.Router(app, apphttp.RouterDeps{
		LeadUC:        crm.NewLeadUseCase(r.leads, r.contacts, r.interactions, r.users, directRunner{r}).WithClock(clock),
		ContactUC:     crm.NewContactUseCase(r.contacts, r.leads),
		InteractionUC: crm.NewInteractionUseCase(r.interactions, r.leads),
		DashboardUC:   dashboardUC,
		ReportUC:      appanalytics.NewReportUseCase(dashboardUC, fakePDF{}),
		UserUC:        usecase.NewUserUseCase(r.users),
		AuthUC:        auth.NewAuthUseCase(r.users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		AuthEnabled:   authEnabled,
		JWTSecret:     testJWTSecret,
	})
	return app, r
}

func sampleLead() *entity.Lead {
	return &entity.Lead{
		ID:            leadID,
		Name:          "La Parrilla",
		Phone:         "555-0100",
		Email:         "compras@laparrilla.co",
		Status:        entity.LeadStatusNew,
		CallFrequency: entity.CallFrequencyWeekly,
		CallSchedule: []entity.CallScheduleEntry{
			{ID: callID, Date: fixedNow.AddDate(0, 0, 1), Status: entity.CallStatusScheduled},
		},
	}
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, raw
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e), string(raw))
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Leads
// ──────────────────────────────────────────────────────────────────────────────

func TestLeads_IdentificadorMalFormado_400(t *testing.T) {
	app, _ := newTestApp(false)

	resp, raw := do(t, app, http.MethodGet, "/api/leads/no-es-un-id", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, "INVALID_ID", e.Code)
	assert.Equal(t, "invalid identifier", e.Message)
}

func TestLeads_NoExiste_404(t *testing.T) {
	app, r := newTestApp(false)
	r.leads.On("GetByID", mock.Anything, leadID).Return(nil, nil)

	resp, raw := do(t, app, http.MethodGet, "/api/leads/"+leadID, "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)
}

func TestLeads_ListSinExpandir(t *testing.T) {
	app, r := newTestApp(false)
	r.leads.On("List", mock.Anything).Return([]*entity.Lead{sampleLead()}, nil)

	resp, raw := do(t, app, http.MethodGet, "/api/leads?expand=false", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []dto.LeadResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "La Parrilla", out[0].Name)
	r.contacts.AssertNotCalled(t, "List", mock.Anything)
	r.interactions.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestLeads_Create_201(t *testing.T) {
	app, r := newTestApp(false)
	r.leads.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).Return(nil)

	resp, raw := do(t, app, http.MethodPost, "/api/leads",
		`{"name":"Sushi Bar","phone":"555-0101","email":"hola@sushibar.com"}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.LeadResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "New", out.Status)
	assert.Equal(t, "Weekly", out.CallFrequency)
}

func TestLeads_Create_ValidacionPorCampo(t *testing.T) {
	app, r := newTestApp(false)

	resp, raw := do(t, app, http.MethodPost, "/api/leads", `{"phone":"555","status":"Lost"}`)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, "VALIDATION", e.Code)
	fields := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "status"}, fields)
	r.leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLeads_Create_CuerpoInvalido(t *testing.T) {
	app, _ := newTestApp(false)

	resp, raw := do(t, app, http.MethodPost, "/api/leads", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, raw).Code)
}

func TestLeads_Delete_Cascada(t *testing.T) {
	app, r := newTestApp(false)
	r.leads.On("Delete", mock.Anything, leadID).Return(nil)
	r.contacts.On("DeleteByLead", mock.Anything, leadID).Return(int64(2), nil)
	r.interactions.On("DeleteByLead", mock.Anything, leadID).Return(int64(5), nil)

	resp, _ := do(t, app, http.MethodDelete, "/api/leads/"+leadID, "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	r.contacts.AssertExpectations(t)
	r.interactions.AssertExpectations(t)
}

func TestLeads_ErrorDeInfraestructura_500(t *testing.T) {
	app, r := newTestApp(false)
	r.leads.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	resp, raw := do(t, app, http.MethodGet, "/api/leads?expand=false", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, "INTERNAL", e.Code)
	assert.Equal(t, "internal error", e.Error)
	assert.NotContains(t, string(raw), "connection refused")
}

func TestLeads_FalloAlVerificarKAM_500(t *testing.T) {
	app, r := newTestApp(false)
	r.users.On("GetByID", mock.Anything, "33333333-3333-3333-3333-333333333333").Return(nil, errors.New("connection refused"))

	resp, raw := do(t, app, http.MethodPost, "/api/leads",
		`{"name":"Sushi Bar","phone":"555","email":"a@b.co","kam_id":"33333333-3333-3333-3333-333333333333"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, "INTERNAL", e.Code)
	assert.Empty(t, e.Fields)
	r.leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agenda de llamadas
// ──────────────────────────────────────────────────────────────────────────────

func TestCalls_Add_201ConAgendaCompleta(t *testing.T) {
	app, r := newTestApp(false)
	r.leads.On("AddCall", mock.Anything, leadID, mock.AnythingOfType("entity.CallScheduleEntry")).Return(nil)
	lead := sampleLead()
	lead.CallSchedule = append(lead.CallSchedule, entity.CallScheduleEntry{
		ID: "44444444-4444-4444-4444-444444444444", Date: fixedNow.AddDate(0, 0, 7), Status: entity.CallStatusScheduled,
	})
	r.leads.On("GetByID", mock.Anything, leadID).Return(lead, nil)

	resp, raw := do(t, app, http.MethodPost, "/api/leads/"+leadID+"/calls", `{"date":"2026-05-27"}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out []dto.CallResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Len(t, out, 2)
}

func TestCalls_RemoveInexistente_NoOp200(t *testing.T) {
	app, r := newTestApp(false)
	missing := "55555555-5555-5555-5555-555555555555"
	r.leads.On("RemoveCall", mock.Anything, leadID, missing).Return(nil)
	r.leads.On("GetByID", mock.Anything, leadID).Return(sampleLead(), nil)

	resp, raw := do(t, app, http.MethodDelete, "/api/leads/"+leadID+"/calls/"+missing, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []dto.CallResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 1)
	assert.Equal(t, callID, out[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas estáticas antes de :id
// ──────────────────────────────────────────────────────────────────────────────

func TestLeads_Metrics(t *testing.T) {
	app, r := newTestApp(false)
	r.leads.On("Count", mock.Anything).Return(int64(12), nil)
	r.leads.On("CountByStatus", mock.Anything, entity.LeadStatusNew).Return(int64(4), nil)
	r.leads.On("CountCallsByStatus", mock.Anything, entity.CallStatusScheduled).Return(int64(7), nil)

	resp, raw := do(t, app, http.MethodGet, "/api/leads/metrics", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LeadMetricsDTO
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, dto.LeadMetricsDTO{TotalLeads: 12, NewLeads: 4, UpcomingCalls: 7, Performance: "Good"}, out)
	r.leads.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestLeads_PerformanceReportPDF(t *testing.T) {
	app, r := newTestApp(false)
	r.leads.On("List", mock.Anything).Return([]*entity.Lead{sampleLead()}, nil)
	r.interactions.On("List", mock.Anything, repository.InteractionFilter{}).Return([]*entity.Interaction{}, nil)

	resp, raw := do(t, app, http.MethodGet, "/api/leads/performance/report", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "desempeno-leads-20260520.pdf")
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestInteractions_Update_MontoNuloLoBorra(t *testing.T) {
	app, r := newTestApp(false)
	amount := decimal.RequireFromString("99")
	existing := &entity.Interaction{ID: callID, LeadID: leadID, Type: entity.InteractionOrder, Date: fixedNow, OrderAmount: &amount}
	r.interactions.On("GetByID", mock.Anything, callID).Return(existing, nil)
	var saved *entity.Interaction
	r.interactions.On("Update", mock.Anything, mock.AnythingOfType("*entity.Interaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Interaction) }).
		Return(nil)

	resp, raw := do(t, app, http.MethodPut, "/api/interactions/"+callID, `{"order_amount":null}`)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	require.NotNil(t, saved)
	assert.Nil(t, saved.OrderAmount)
	assert.NotContains(t, string(raw), "order_amount")
}

func TestInteractions_Dashboard(t *testing.T) {
	app, r := newTestApp(false)
	r.interactions.On("SummaryByLead", mock.Anything).Return([]repository.InteractionSummaryResult{
		{LeadID: leadID, LeadName: "La Parrilla", InteractionCount: 3},
	}, nil)

	resp, raw := do(t, app, http.MethodGet, "/api/interactions/dashboard", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []dto.InteractionSummaryDTO
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, []dto.InteractionSummaryDTO{{LeadID: leadID, LeadName: "La Parrilla", InteractionCount: 3}}, out)
}

func TestInteractions_RecentLimitado(t *testing.T) {
	app, r := newTestApp(false)
	r.interactions.On("List", mock.Anything, repository.InteractionFilter{Limit: crm.MaxRecentLimit}).
		Return([]*entity.Interaction{}, nil)

	resp, raw := do(t, app, http.MethodGet, "/api/interactions/recent?limit=500", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
	r.interactions.AssertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contactos
// ──────────────────────────────────────────────────────────────────────────────

func TestContacts_LeadSinContactos_ListaVacia(t *testing.T) {
	app, r := newTestApp(false)
	r.contacts.On("ListByLead", mock.Anything, leadID).Return(nil, nil)

	resp, raw := do(t, app, http.MethodGet, "/api/contacts/"+leadID, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestContacts_CreateLeadInexistente_404(t *testing.T) {
	app, r := newTestApp(false)
	r.leads.On("GetByID", mock.Anything, leadID).Return(nil, nil)

	resp, _ := do(t, app, http.MethodPost, "/api/contacts/"+leadID,
		`{"name":"Ana","phone":"555","email":"ana@laparrilla.co"}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	r.contacts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth habilitada
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthEnabled_SinToken_401(t *testing.T) {
	app, _ := newTestApp(true)

	resp, _ := do(t, app, http.MethodGet, "/api/leads", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthEnabled_LoginEsPublico(t *testing.T) {
	app, r := newTestApp(true)
	r.users.On("FindByEmail", mock.Anything, "nadie@crm.co").Return(nil, nil)

	resp, raw := do(t, app, http.MethodPost, "/api/auth/login", `{"email":"Nadie@crm.co","password":"secreto123"}`)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, raw).Code)
}

func TestAuthEnabled_KAMNoPuedeCrearUsuarios(t *testing.T) {
	app, r := newTestApp(true)

	resp, _ := do(t, app, http.MethodPost, "/api/users",
		`{"email":"kam@crm.co","password":"secreto123","name":"KAM"}`,
		"Authorization", tokenForRole(t, "KAM"))

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	r.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthEnabled_KAMListaLeads(t *testing.T) {
	app, r := newTestApp(true)
	r.leads.On("List", mock.Anything).Return([]*entity.Lead{}, nil)

	resp, raw := do(t, app, http.MethodGet, "/api/leads?expand=false", "", "Authorization", tokenForRole(t, "KAM"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// ErrorHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestRutaInexistente_404JSON(t *testing.T) {
	app, _ := newTestApp(false)

	resp, raw := do(t, app, http.MethodGet, "/api/nada", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)
}
