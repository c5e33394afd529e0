package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-crm-api/internal/application/dto"
	"github.com/jhoicas/leads-crm-api/internal/application/validation"
	"github.com/jhoicas/leads-crm-api/internal/domain"
)

func TestStruct_ValidoNoAgregaErrores(t *testing.T) {
	v := &domain.ValidationError{}

	validation.Struct(v, dto.CreateContactRequest{Name: "Ana", Phone: "1", Email: "ana@x.co"})

	assert.NoError(t, v.Err())
}

func TestStruct_UsaNombreJSONYMensajes(t *testing.T) {
	v := &domain.ValidationError{}

	validation.Struct(v, dto.CreateLeadRequest{
		Phone:         "555",
		Email:         "no-es-email",
		CallFrequency: "Yearly",
	})

	require.Error(t, v.Err())
	got := map[string]string{}
	for _, f := range v.Fields {
		got[f.Field] = f.Message
	}
	assert.Equal(t, map[string]string{
		"name":           "is required",
		"email":          "must be a valid email address",
		"call_frequency": "must be one of Daily, Weekly, Monthly",
	}, got)
}

func TestStruct_RutaDeElementosAnidados(t *testing.T) {
	v := &domain.ValidationError{}

	validation.Struct(v, dto.CreateLeadRequest{
		Name: "Sushi Bar", Phone: "555", Email: "a@b.co",
		CallSchedule: []dto.CreateCallRequest{{Date: "2026-06-01"}, {Status: "Pending"}},
	})

	require.Len(t, v.Fields, 2)
	fields := []string{v.Fields[0].Field, v.Fields[1].Field}
	assert.ElementsMatch(t, []string{"call_schedule[1].date", "call_schedule[1].status"}, fields)
}

func TestStruct_PunterosNilNoSeValidan(t *testing.T) {
	v := &domain.ValidationError{}
	bad := "Lost"

	validation.Struct(v, dto.UpdateLeadRequest{})
	assert.NoError(t, v.Err())

	validation.Struct(v, dto.UpdateLeadRequest{Status: &bad})
	require.Len(t, v.Fields, 1)
	assert.Equal(t, "status", v.Fields[0].Field)
}

func TestStruct_ActualizacionConCampoVacio(t *testing.T) {
	v := &domain.ValidationError{}
	empty := ""

	validation.Struct(v, dto.UpdateContactRequest{Name: &empty})

	require.Len(t, v.Fields, 1)
	assert.Equal(t, "name", v.Fields[0].Field)
	assert.Equal(t, "is required", v.Fields[0].Message)
}

func TestStruct_PasswordCorto(t *testing.T) {
	v := &domain.ValidationError{}

	validation.Struct(v, dto.CreateUserRequest{Email: "kam@crm.co", Password: "corto", Name: "Laura"})

	require.Len(t, v.Fields, 1)
	assert.Equal(t, "password", v.Fields[0].Field)
	assert.Equal(t, "must be at least 8 characters", v.Fields[0].Message)
}
