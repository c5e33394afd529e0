package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
)

// fakeTx registra las sentencias ejecutadas; falla en la sentencia número failOn (1-based, 0 = nunca).
type fakeTx struct {
	pgx.Tx
	stmts      []string
	failOn     int
	commits    int
	rollbacks  int
	commitErr  error
	afterClose bool
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.stmts = append(t.stmts, strings.TrimSpace(sql))
	if len(t.stmts) == t.failOn {
		return pgconn.CommandTag{}, errors.New("conn closed")
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.commits++
	t.afterClose = true
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.afterClose {
		return pgx.ErrTxClosed
	}
	t.rollbacks++
	t.afterClose = true
	return nil
}

// fakeQuerier entrega siempre la misma fakeTx y cuenta las sentencias ejecutadas fuera de ella.
type fakeQuerier struct {
	tx     *fakeTx
	direct int
}

func (q *fakeQuerier) Begin(context.Context) (pgx.Tx, error) { return q.tx, nil }

func (q *fakeQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.direct++
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.direct++
	return nil, errors.New("no disponible")
}

func (q *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	q.direct++
	return nil
}

func leadWithCalls(n int) *entity.Lead {
	now := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)
	lead := &entity.Lead{
		ID: "11111111-1111-1111-1111-111111111111", Name: "Sushi Bar", Phone: "555", Email: "a@b.co",
		Status: entity.LeadStatusNew, CallFrequency: entity.CallFrequencyWeekly,
		CreatedAt: now, UpdatedAt: now,
	}
	for i := 0; i < n; i++ {
		lead.CallSchedule = append(lead.CallSchedule, entity.CallScheduleEntry{
			ID: "c" + string(rune('1'+i)), Date: now.AddDate(0, 0, i+1), Status: entity.CallStatusScheduled,
		})
	}
	return lead
}

func TestLeadCreate_LeadYAgendaEnUnaTransaccion(t *testing.T) {
	q := &fakeQuerier{tx: &fakeTx{}}

	err := NewLeadRepository(q).Create(context.Background(), leadWithCalls(2))

	require.NoError(t, err)
	require.Len(t, q.tx.stmts, 3)
	assert.True(t, strings.HasPrefix(q.tx.stmts[0], "INSERT INTO leads"))
	assert.True(t, strings.HasPrefix(q.tx.stmts[1], "INSERT INTO lead_calls"))
	assert.Equal(t, 1, q.tx.commits)
	assert.Zero(t, q.tx.rollbacks)
	assert.Zero(t, q.direct, "ninguna sentencia debe salir fuera de la transacción")
}

func TestLeadCreate_FalloEnAgendaDeshaceElLead(t *testing.T) {
	q := &fakeQuerier{tx: &fakeTx{failOn: 3}}

	err := NewLeadRepository(q).Create(context.Background(), leadWithCalls(2))

	require.Error(t, err)
	assert.ErrorContains(t, err, "insert lead_call")
	assert.Zero(t, q.tx.commits)
	assert.Equal(t, 1, q.tx.rollbacks)
	assert.Zero(t, q.direct)
}

func TestLeadCreate_FalloEnCommit(t *testing.T) {
	q := &fakeQuerier{tx: &fakeTx{commitErr: errors.New("serialization failure")}}

	err := NewLeadRepository(q).Create(context.Background(), leadWithCalls(0))

	assert.ErrorContains(t, err, "commit transaction")
}
