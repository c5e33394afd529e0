package mongodb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/leads-crm-api/internal/domain/entity"
)

func TestLeadDoc_AgendaEmbebidaYBSON(t *testing.T) {
	last := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	lead := &entity.Lead{
		ID:            "l-1",
		Name:          "Tacos El Güero",
		Status:        entity.LeadStatusInterested,
		CallFrequency: entity.CallFrequencyMonthly,
		LastCallDate:  &last,
		CallSchedule: []entity.CallScheduleEntry{
			{ID: "c-1", Date: last.AddDate(0, 1, 0), Notes: "seguimiento", Status: entity.CallStatusScheduled},
		},
	}

	raw, err := bson.Marshal(toLeadDoc(lead))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "l-1", m["_id"])
	assert.Equal(t, "Monthly", m["call_frequency"])
	_, hasKAM := m["kam_id"]
	assert.False(t, hasKAM, "kam_id vacío no se persiste")
	calls, ok := m["call_schedule"].(bson.A)
	require.True(t, ok)
	require.Len(t, calls, 1)
	assert.Equal(t, "c-1", calls[0].(bson.M)["_id"])

	var back leadDoc
	require.NoError(t, bson.Unmarshal(raw, &back))
	got := back.toEntity()
	assert.Equal(t, lead.CallSchedule, got.CallSchedule)
	assert.Equal(t, entity.LeadStatusInterested, got.Status)
}

func TestInteractionDoc_MontoDecimal128(t *testing.T) {
	amount := decimal.RequireFromString("1234.56")
	in := &entity.Interaction{ID: "i-1", LeadID: "l-1", Type: entity.InteractionOrder, OrderAmount: &amount}

	doc, err := toInteractionDoc(in)
	require.NoError(t, err)
	require.NotNil(t, doc.OrderAmount)
	assert.Equal(t, "1234.56", doc.OrderAmount.String())

	got, err := doc.toEntity()
	require.NoError(t, err)
	require.NotNil(t, got.OrderAmount)
	assert.True(t, got.OrderAmount.Equal(amount))
}

func TestInteractionDoc_SinMontoNoSePersiste(t *testing.T) {
	doc, err := toInteractionDoc(&entity.Interaction{ID: "i-2", Type: entity.InteractionCall})
	require.NoError(t, err)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	_, has := m["order_amount"]
	assert.False(t, has)
}

func TestListPipeline_ConLimiteOrdenaDescendente(t *testing.T) {
	p := listPipeline(bson.M{}, 10)

	require.GreaterOrEqual(t, len(p), 3)
	assert.Equal(t, "$sort", p[1][0].Key)
	assert.Equal(t, bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}, p[1][0].Value)
	assert.Equal(t, bson.D{{Key: "$limit", Value: int64(10)}}, p[2])
}

func TestSummaryPipeline_AgrupaPorLead(t *testing.T) {
	p := summaryPipeline()

	assert.Equal(t, "$group", p[0][0].Key)
	assert.Equal(t, "$sort", p[len(p)-1][0].Key)
}
