package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/pkg/textnorm"
)

func TestParseLeads_ColumnasEnCualquierOrden(t *testing.T) {
	in := "email,name,phone,status,call_frequency,address\n" +
		"Compras@LaParrilla.co,  La   Parrilla ,555-0100,Contacted,Daily,Calle 10 #4-20\n" +
		"\n" +
		"hola@sushi.co,Sushi Bar,555-0101,,,\n"

	rows, errs, err := parseLeads(strings.NewReader(in))

	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, "La Parrilla", rows[0].Request.Name)
	assert.Equal(t, "compras@laparrilla.co", rows[0].Request.Email)
	assert.Equal(t, "Contacted", rows[0].Request.Status)
	assert.Equal(t, "Daily", rows[0].Request.CallFrequency)
	assert.Equal(t, "Calle 10 #4-20", rows[0].Request.Address)
	assert.Equal(t, 4, rows[1].Row)
	assert.Empty(t, rows[1].Request.Status)
}

func TestParseLeads_FaltaColumnaObligatoria(t *testing.T) {
	_, _, err := parseLeads(strings.NewReader("name,phone\nLa Parrilla,555\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestParseLeads_FilaIncompleta(t *testing.T) {
	in := "name,phone,email\nLa Parrilla,555\nSushi Bar,556,hola@sushi.co\n"

	rows, errs, err := parseLeads(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Row)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sushi Bar", rows[0].Request.Name)
}

func TestParseLeads_Latin1(t *testing.T) {
	// "Panadería" con í = 0xED en ISO-8859-1
	raw := append([]byte("name,phone,email\nPanader"), 0xED)
	raw = append(raw, []byte("a,555,pan@ejemplo.co\n")...)

	rows, _, err := parseLeads(textnorm.DecodeReader(bytes.NewReader(raw), "iso-8859-1"))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Panadería", rows[0].Request.Name)
}

func TestParseLeads_Vacio(t *testing.T) {
	_, _, err := parseLeads(strings.NewReader(""))

	assert.Error(t, err)
}

func TestCheckRows_DryRunRechazaFilasInvalidas(t *testing.T) {
	in := "name,phone,email,status,call_frequency\n" +
		"La Parrilla,555-0100,compras@laparrilla.co,Contacted,Daily\n" +
		"Sushi Bar,555-0101,no-es-email,Lost,\n" +
		"Taquería,555-0102,hola@taqueria.mx,,Yearly\n"
	rows, errs, err := parseLeads(strings.NewReader(in))
	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, rows, 3)

	valid, rejected := checkRows(context.Background(), crm.NewLeadUseCase(nil, nil, nil, nil, nil), rows)

	require.Len(t, valid, 1)
	assert.Equal(t, 2, valid[0].Row)
	require.Len(t, rejected, 2)
	assert.Equal(t, 3, rejected[0].Row)
	assert.Contains(t, rejected[0].Message, "email")
	assert.Contains(t, rejected[0].Message, "status")
	assert.Equal(t, 4, rejected[1].Row)
	assert.Contains(t, rejected[1].Message, "call_frequency")
}
