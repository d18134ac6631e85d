package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStartAndResume(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	m := NewManager(store, NewTokenIssuer("secret", time.Hour))
	ctx := context.Background()

	sess, token, err := m.Start(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	sess.State.BindCandidate(11, 123)
	require.NoError(t, sess.Save(ctx))

	resumed, newToken, err := m.Start(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, newToken)
	assert.Equal(t, sess.ID, resumed.ID)
	assert.Equal(t, int64(11), resumed.State.CandidateID)

	require.NoError(t, resumed.Clear(ctx))
	again, _, err := m.Start(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, again.ID, "clearing keeps the session id")
	assert.Equal(t, PhaseUnregistered, again.State.Phase())
}

func TestManagerReplacesInvalidToken(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	m := NewManager(store, NewTokenIssuer("secret", time.Hour))

	sess, token, err := m.Start(context.Background(), "forged")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, PhaseUnregistered, sess.State.Phase())
}
