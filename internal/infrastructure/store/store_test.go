package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-crm-api/pkg/config"
)

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "sqlite"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}
