package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-crm-api/pkg/logger"
)

func TestNew_JSONConServicioYNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "WARN", Service: "leads-crm", Output: &buf})

	l.Info().Msg("descartado")
	l.Warn().Str("lead_id", "abc").Msg("visible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var ev map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &ev))
	assert.Equal(t, "warn", ev["level"])
	assert.Equal(t, "leads-crm", ev["service"])
	assert.Equal(t, "abc", ev["lead_id"])
	assert.Equal(t, "visible", ev["message"])
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "verbose", Output: &buf})

	l.Debug().Msg("no")
	l.Info().Msg("si")

	assert.Contains(t, buf.String(), `"message":"si"`)
	assert.NotContains(t, buf.String(), `"message":"no"`)
}
