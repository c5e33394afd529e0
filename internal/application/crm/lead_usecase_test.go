package crm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/application/dto"
	"github.com/jhoicas/leads-crm-api/internal/domain"
	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository"
	"github.com/jhoicas/leads-crm-api/internal/domain/repository/mocks"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

const (
	leadID = "11111111-1111-1111-1111-111111111111"
	callID = "22222222-2222-2222-2222-222222222222"
	kamID  = "33333333-3333-3333-3333-333333333333"
)

type repos struct {
	leads        *mocks.LeadRepository
	contacts     *mocks.ContactRepository
	interactions *mocks.InteractionRepository
	users        *mocks.UserRepository
}

// directRunner ejecuta el borrado en cascada sin transacción sobre los mocks.
type directRunner struct{ r repos }

func (d directRunner) RunLeadDeletion(_ context.Context, fn func(
	repository.LeadRepository, repository.ContactRepository, repository.InteractionRepository,
) error) error {
	return fn(d.r.leads, d.r.contacts, d.r.interactions)
}

func newLeadUseCase() (*crm.LeadUseCase, repos) {
	r := repos{
		leads:        new(mocks.LeadRepository),
		contacts:     new(mocks.ContactRepository),
		interactions: new(mocks.InteractionRepository),
		users:        new(mocks.UserRepository),
	}
	uc := crm.NewLeadUseCase(r.leads, r.contacts, r.interactions, r.users, directRunner{r}).
		WithClock(func() time.Time { return fixedNow })
	return uc, r
}

func sampleLead() *entity.Lead {
	last := fixedNow.AddDate(0, 0, -8)
	return &entity.Lead{
		ID:            leadID,
		Name:          "La Parrilla",
		Phone:         "+57 300 000 0000",
		Email:         "compras@laparrilla.co",
		Status:        entity.LeadStatusContacted,
		CallFrequency: entity.CallFrequencyWeekly,
		LastCallDate:  &last,
		CallSchedule: []entity.CallScheduleEntry{
			{ID: callID, Date: fixedNow.AddDate(0, 0, 1), Status: entity.CallStatusScheduled},
		},
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v), "se esperaba ValidationError, llegó %v", err)
	names := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		names = append(names, f.Field)
	}
	return names
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadCreate_AplicaValoresPorDefecto(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).Return(nil)

	out, err := uc.Create(context.Background(), dto.CreateLeadRequest{
		Name:  "Sushi Bar",
		Phone: "555-0101",
		Email: "hola@sushibar.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "New", out.Status)
	assert.Equal(t, "Weekly", out.CallFrequency)
	assert.False(t, out.CallDue)
	assert.Empty(t, out.CallSchedule)
	assert.Equal(t, fixedNow, out.CreatedAt)
	r.leads.AssertExpectations(t)
}

func TestLeadCreate_ValidacionPorCampo(t *testing.T) {
	uc, r := newLeadUseCase()

	_, err := uc.Create(context.Background(), dto.CreateLeadRequest{
		Phone:         "555-0101",
		Email:         "no-es-email",
		Status:        "Negotiating",
		CallFrequency: "Yearly",
		LastCallDate:  "ayer",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ElementsMatch(t, []string{"name", "email", "status", "call_frequency", "last_call_date"}, fieldNames(t, err))
	r.leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLeadCreate_KAMInexistente(t *testing.T) {
	uc, r := newLeadUseCase()
	r.users.On("GetByID", mock.Anything, kamID).Return(nil, nil)

	_, err := uc.Create(context.Background(), dto.CreateLeadRequest{
		Name: "Sushi Bar", Phone: "555", Email: "a@b.co", KAMID: kamID,
	})

	assert.Equal(t, []string{"kam_id"}, fieldNames(t, err))
}

func TestLeadCreate_ConAgendaInicial(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).Return(nil)

	out, err := uc.Create(context.Background(), dto.CreateLeadRequest{
		Name: "Sushi Bar", Phone: "555", Email: "a@b.co",
		CallSchedule: []dto.CreateCallRequest{{Date: "2026-06-01", Notes: "primera llamada"}},
	})

	require.NoError(t, err)
	require.Len(t, out.CallSchedule, 1)
	assert.Equal(t, "Scheduled", out.CallSchedule[0].Status)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), out.CallSchedule[0].Date)
}

func TestLeadCreate_FalloAlConsultarKAMNoEsValidacion(t *testing.T) {
	uc, r := newLeadUseCase()
	r.users.On("GetByID", mock.Anything, kamID).Return(nil, errors.New("connection refused"))

	_, err := uc.Create(context.Background(), dto.CreateLeadRequest{
		Name: "Sushi Bar", Phone: "555", Email: "a@b.co", KAMID: kamID,
	})

	require.Error(t, err)
	var v *domain.ValidationError
	assert.False(t, errors.As(err, &v), "un fallo de infraestructura no es un error de validación")
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "connection refused")
	r.leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLeadCreate_FechasSinZonaEnLaZonaDelReloj(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, bogota)
	cases := []struct {
		name      string
		frequency string
		lastCall  string
		due       bool
	}{
		{"diaria llamada hoy", "Daily", "2026-10-19", false},
		{"diaria llamada ayer", "Daily", "2026-10-18", true},
		{"semanal hace 6 días", "Weekly", "2026-10-13", false},
		{"semanal hace 7 días", "Weekly", "2026-10-12", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, r := newLeadUseCase()
			uc.WithClock(func() time.Time { return now })
			r.leads.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).Return(nil)

			out, err := uc.Create(context.Background(), dto.CreateLeadRequest{
				Name: "Sushi Bar", Phone: "555", Email: "a@b.co",
				CallFrequency: tc.frequency, LastCallDate: tc.lastCall,
			})

			require.NoError(t, err)
			require.NotNil(t, out.LastCallDate)
			assert.Equal(t, bogota, out.LastCallDate.Location())
			assert.Equal(t, tc.due, out.CallDue)
		})
	}
}

func TestLeadCreate_TimestampConOffsetSeConserva(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).Return(nil)

	out, err := uc.Create(context.Background(), dto.CreateLeadRequest{
		Name: "Sushi Bar", Phone: "555", Email: "a@b.co", LastCallDate: "2026-05-19T20:00:00-05:00",
	})

	require.NoError(t, err)
	require.NotNil(t, out.LastCallDate)
	assert.True(t, out.LastCallDate.Equal(time.Date(2026, 5, 20, 1, 0, 0, 0, time.UTC)))
}

func TestLeadValidate_NoPersiste(t *testing.T) {
	uc, r := newLeadUseCase()

	err := uc.Validate(context.Background(), dto.CreateLeadRequest{
		Name: "Sushi Bar", Phone: "555", Email: "no-es-email", Status: "Lost",
		CallSchedule: []dto.CreateCallRequest{{Date: "mañana"}},
	})

	assert.ElementsMatch(t, []string{"email", "status", "call_schedule[0].date"}, fieldNames(t, err))
	require.NoError(t, uc.Validate(context.Background(), dto.CreateLeadRequest{Name: "Sushi Bar", Phone: "555", Email: "a@b.co"}))
	r.leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLeadUpdate_KAMSoloSeVerificaSiCambia(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("GetByID", mock.Anything, leadID).Return(sampleLead(), nil)
	r.users.On("GetByID", mock.Anything, kamID).Return(nil, errors.New("timeout"))

	kam := kamID
	_, err := uc.Update(context.Background(), leadID, dto.UpdateLeadRequest{KAMID: &kam})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	r.leads.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLeadUpdate_ParcialYLimpiarUltimaLlamada(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("GetByID", mock.Anything, leadID).Return(sampleLead(), nil)
	r.leads.On("Update", mock.Anything, mock.AnythingOfType("*entity.Lead")).Return(nil)

	status := "Interested"
	empty := ""
	out, err := uc.Update(context.Background(), leadID, dto.UpdateLeadRequest{Status: &status, LastCallDate: &empty})

	require.NoError(t, err)
	assert.Equal(t, "Interested", out.Status)
	assert.Equal(t, "La Parrilla", out.Name)
	assert.Nil(t, out.LastCallDate)
	assert.False(t, out.CallDue)
}

func TestLeadUpdate_NoExiste(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("GetByID", mock.Anything, leadID).Return(nil, nil)

	_, err := uc.Update(context.Background(), leadID, dto.UpdateLeadRequest{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadGetByID_IdentificadorInvalido(t *testing.T) {
	uc, r := newLeadUseCase()

	_, err := uc.GetByID(context.Background(), "abc", true)

	assert.ErrorIs(t, err, domain.ErrInvalidID)
	r.leads.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestLeadGetByID_ExpandeContactosEInteracciones(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("GetByID", mock.Anything, leadID).Return(sampleLead(), nil)
	r.contacts.On("ListByLead", mock.Anything, leadID).Return([]*entity.Contact{{ID: "c1", LeadID: leadID, Name: "Ana"}}, nil)
	r.interactions.On("List", mock.Anything, repository.InteractionFilter{LeadID: leadID}).
		Return([]*entity.Interaction{{ID: "i1", LeadID: leadID, Type: entity.InteractionCall}}, nil)

	out, err := uc.GetByID(context.Background(), leadID, true)

	require.NoError(t, err)
	assert.True(t, out.CallDue, "weekly con última llamada hace 8 días")
	require.Len(t, out.Contacts, 1)
	require.Len(t, out.Interactions, 1)
	assert.Equal(t, "Ana", out.Contacts[0].Name)
}

func TestLeadList_AgrupaExpansionPorLead(t *testing.T) {
	uc, r := newLeadUseCase()
	other := &entity.Lead{ID: "44444444-4444-4444-4444-444444444444", Name: "Otro", CallFrequency: entity.CallFrequencyDaily}
	r.leads.On("List", mock.Anything).Return([]*entity.Lead{sampleLead(), other}, nil)
	r.contacts.On("List", mock.Anything).Return([]*entity.Contact{{ID: "c1", LeadID: leadID}}, nil)
	r.interactions.On("List", mock.Anything, repository.InteractionFilter{}).Return([]*entity.Interaction{
		{ID: "i1", LeadID: other.ID}, {ID: "i2", LeadID: other.ID},
	}, nil)

	out, err := uc.List(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out[0].Contacts, 1)
	assert.Empty(t, out[0].Interactions)
	assert.Empty(t, out[1].Contacts)
	assert.Len(t, out[1].Interactions, 2)
}

func TestLeadList_SinExpansionNoConsultaRelaciones(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("List", mock.Anything).Return([]*entity.Lead{sampleLead()}, nil)

	out, err := uc.List(context.Background(), false)

	require.NoError(t, err)
	assert.Len(t, out, 1)
	r.contacts.AssertNotCalled(t, "List", mock.Anything)
}

func TestLeadSearch_QueryVacio(t *testing.T) {
	uc, _ := newLeadUseCase()

	_, err := uc.Search(context.Background(), "  ")

	assert.Equal(t, []string{"query"}, fieldNames(t, err))
}

func TestDueCalls_FiltraPorFrecuencia(t *testing.T) {
	uc, r := newLeadUseCase()
	recent := fixedNow.AddDate(0, 0, -2)
	notDue := &entity.Lead{ID: "n", CallFrequency: entity.CallFrequencyWeekly, LastCallDate: &recent}
	never := &entity.Lead{ID: "x", CallFrequency: entity.CallFrequencyDaily}
	r.leads.On("List", mock.Anything).Return([]*entity.Lead{sampleLead(), notDue, never}, nil)

	out, err := uc.DueCalls(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, leadID, out[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado en cascada
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadDelete_BorraContactosEInteracciones(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("Delete", mock.Anything, leadID).Return(nil)
	r.contacts.On("DeleteByLead", mock.Anything, leadID).Return(int64(2), nil)
	r.interactions.On("DeleteByLead", mock.Anything, leadID).Return(int64(5), nil)

	require.NoError(t, uc.Delete(context.Background(), leadID))

	r.leads.AssertExpectations(t)
	r.contacts.AssertExpectations(t)
	r.interactions.AssertExpectations(t)
}

func TestLeadDelete_NoExisteNoTocaDependientes(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("Delete", mock.Anything, leadID).Return(domain.ErrNotFound)

	err := uc.Delete(context.Background(), leadID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	r.contacts.AssertNotCalled(t, "DeleteByLead", mock.Anything, mock.Anything)
	r.interactions.AssertNotCalled(t, "DeleteByLead", mock.Anything, mock.Anything)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agenda de llamadas
// ──────────────────────────────────────────────────────────────────────────────

func TestAddCall_DevuelveAgendaActualizada(t *testing.T) {
	uc, r := newLeadUseCase()
	after := sampleLead()
	after.CallSchedule = append(after.CallSchedule, entity.CallScheduleEntry{ID: "nueva", Date: fixedNow, Status: entity.CallStatusScheduled})
	r.leads.On("AddCall", mock.Anything, leadID, mock.AnythingOfType("entity.CallScheduleEntry")).Return(nil)
	r.leads.On("GetByID", mock.Anything, leadID).Return(after, nil)

	out, err := uc.AddCall(context.Background(), leadID, dto.CreateCallRequest{Date: "2026-05-20T10:00:00Z"})

	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestAddCall_EstadoInvalido(t *testing.T) {
	uc, r := newLeadUseCase()

	_, err := uc.AddCall(context.Background(), leadID, dto.CreateCallRequest{Date: "2026-05-20", Status: "Pending"})

	assert.Equal(t, []string{"status"}, fieldNames(t, err))
	r.leads.AssertNotCalled(t, "AddCall", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddCall_LeadInexistente(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("AddCall", mock.Anything, leadID, mock.Anything).Return(domain.ErrNotFound)

	_, err := uc.AddCall(context.Background(), leadID, dto.CreateCallRequest{Date: "2026-05-20"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveCall_IdAusenteDejaAgendaIgual(t *testing.T) {
	uc, r := newLeadUseCase()
	missing := "55555555-5555-5555-5555-555555555555"
	r.leads.On("RemoveCall", mock.Anything, leadID, missing).Return(nil)
	r.leads.On("GetByID", mock.Anything, leadID).Return(sampleLead(), nil)

	out, err := uc.RemoveCall(context.Background(), leadID, missing)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, callID, out[0].ID)
}

func TestRemoveCall_CallIdMalFormado(t *testing.T) {
	uc, _ := newLeadUseCase()

	_, err := uc.RemoveCall(context.Background(), leadID, "no-es-uuid")

	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdateCall_CompletadaActualizaUltimaLlamada(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("GetByID", mock.Anything, leadID).Return(sampleLead(), nil)
	r.leads.On("UpdateCall", mock.Anything, leadID, mock.AnythingOfType("entity.CallScheduleEntry")).Return(nil)
	var saved *entity.Lead
	r.leads.On("Update", mock.Anything, mock.AnythingOfType("*entity.Lead")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Lead) }).
		Return(nil)

	status := "Completed"
	date := "2026-05-19T15:00:00Z"
	out, err := uc.UpdateCall(context.Background(), leadID, callID, dto.UpdateCallRequest{Status: &status, Date: &date})

	require.NoError(t, err)
	assert.Equal(t, "Completed", out[0].Status)
	require.NotNil(t, saved)
	require.NotNil(t, saved.LastCallDate)
	assert.Equal(t, time.Date(2026, 5, 19, 15, 0, 0, 0, time.UTC), *saved.LastCallDate)
}

func TestUpdateCall_NoEncontrada(t *testing.T) {
	uc, r := newLeadUseCase()
	r.leads.On("GetByID", mock.Anything, leadID).Return(sampleLead(), nil)

	notes := "x"
	_, err := uc.UpdateCall(context.Background(), leadID, "66666666-6666-6666-6666-666666666666", dto.UpdateCallRequest{Notes: &notes})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
