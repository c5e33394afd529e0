package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-crm-api/internal/application/dto"
)

func TestUpdateInteractionRequest_MontoAusenteNuloYValor(t *testing.T) {
	var absent, null, value dto.UpdateInteractionRequest

	require.NoError(t, json.Unmarshal([]byte(`{"notes":"x"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"order_amount":null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"order_amount":"120.50"}`), &value))

	assert.False(t, absent.OrderAmount.Set)
	assert.True(t, null.OrderAmount.Set)
	assert.Nil(t, null.OrderAmount.Value)
	assert.True(t, value.OrderAmount.Set)
	require.NotNil(t, value.OrderAmount.Value)
	assert.Equal(t, "120.5", value.OrderAmount.Value.String())
}

func TestUpdateInteractionRequest_MontoInvalido(t *testing.T) {
	var req dto.UpdateInteractionRequest

	err := json.Unmarshal([]byte(`{"order_amount":"mucho"}`), &req)

	assert.Error(t, err)
}
