package event

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDisabledPublisherDropsEvents(t *testing.T) {
	p, err := NewEventPublisher("", "academy.events", zap.NewNop())
	require.NoError(t, err)

	err = p.Publish(context.Background(), &QuizCompletedEvent{BaseEvent: NewBaseEvent(EventTypeQuizCompleted)})
	assert.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Close())
}

func TestMockPublisherRecordsTypes(t *testing.T) {
	m := NewMockPublisher()
	ctx := context.Background()

	require.NoError(t, m.Publish(ctx, &CandidateRegisteredEvent{BaseEvent: NewBaseEvent(EventTypeCandidateRegistered)}))
	require.NoError(t, m.Publish(ctx, &PadawanAcceptedEvent{BaseEvent: NewBaseEvent(EventTypePadawanAccepted)}))

	assert.Equal(t, []EventType{EventTypeCandidateRegistered, EventTypePadawanAccepted}, m.Types())
}

func TestEventEncoding(t *testing.T) {
	e := &PadawanAcceptedEvent{BaseEvent: NewBaseEvent(EventTypePadawanAccepted), CandidateID: 4, JediID: 2}
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "padawan.accepted", decoded["type"])
	assert.Equal(t, float64(4), decoded["candidate_id"])
	assert.NotEmpty(t, decoded["id"])
	assert.Equal(t, eventVersion, decoded["version"])
}
