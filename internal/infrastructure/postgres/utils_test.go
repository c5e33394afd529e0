package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(errors.New("timeout")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "abc", nullable("abc"))
}

func TestSchema_TablasYCascada(t *testing.T) {
	for _, table := range []string{"users", "leads", "lead_calls", "contacts", "interactions"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Equal(t, 3, strings.Count(schemaSQL, "REFERENCES leads(id) ON DELETE CASCADE"))
}
