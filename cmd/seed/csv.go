package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/leads-crm-api/internal/application/crm"
	"github.com/jhoicas/leads-crm-api/internal/application/dto"
	"github.com/jhoicas/leads-crm-api/pkg/textnorm"
)

// leadRow fila válida del CSV lista para crear.
type leadRow struct {
	Row     int
	Request dto.CreateLeadRequest
}

// rowError fila descartada antes de llegar al caso de uso.
type rowError struct {
	Row     int
	Message string
}

var requiredColumns = []string{"name", "phone", "email"}

// parseLeads lee el CSV completo. Row es la línea del archivo (la 1 es el encabezado).
// Solo descarta filas vacías o con columnas de menos; el resto de reglas las aplica el caso de uso.
func parseLeads(r io.Reader) ([]leadRow, []rowError, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("csv vacío")
		}
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := col[c]; !ok {
			return nil, nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	var (
		rows []leadRow
		errs []rowError
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			row := 0
			if errors.As(err, &pe) {
				row = pe.Line
			}
			errs = append(errs, rowError{Row: row, Message: err.Error()})
			continue
		}
		line, _ := cr.FieldPos(0)
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return textnorm.Clean(rec[i])
		}
		if strings.Join(rec, "") == "" {
			continue
		}
		if len(rec) < len(header) {
			errs = append(errs, rowError{Row: line, Message: fmt.Sprintf("se esperaban %d columnas, llegaron %d", len(header), len(rec))})
			continue
		}
		rows = append(rows, leadRow{Row: line, Request: dto.CreateLeadRequest{
			Name:          get("name"),
			Address:       get("address"),
			Phone:         get("phone"),
			Email:         strings.ToLower(get("email")),
			Status:        get("status"),
			CallFrequency: get("call_frequency"),
		}})
	}
	return rows, errs, nil
}

// checkRows aplica a cada fila las reglas de creación de leads sin escribir nada.
// Devuelve las filas que pasan y un rowError por cada una rechazada.
func checkRows(ctx context.Context, uc *crm.LeadUseCase, rows []leadRow) ([]leadRow, []rowError) {
	valid := make([]leadRow, 0, len(rows))
	var rejected []rowError
	for _, r := range rows {
		if err := uc.Validate(ctx, r.Request); err != nil {
			rejected = append(rejected, rowError{Row: r.Row, Message: err.Error()})
			continue
		}
		valid = append(valid, r)
	}
	return valid, rejected
}
