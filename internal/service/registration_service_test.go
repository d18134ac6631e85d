package service

import (
	"context"
	"fmt"
	"testing"

	"academy-service/internal/apperror"
	"academy-service/internal/event"
	"academy-service/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLuke(t *testing.T) {
	f := newFixture(t)
	state := &session.State{}

	redirect, err := f.registration.Register(context.Background(), RegistrationInput{
		Name: "Luke", PlanetID: f.tatooine.ID, Age: 25, Email: "  Luke@X.com ",
	}, state)
	require.NoError(t, err)

	assert.Equal(t, QuestionPath(123, f.q1.ID), redirect)
	assert.Equal(t, "/challenge/order_123_1/", redirect)
	assert.Equal(t, session.PhaseAnswering, state.Phase())
	assert.Equal(t, 123, state.OrderCode)

	c, err := f.store.GetCandidate(context.Background(), state.CandidateID)
	require.NoError(t, err)
	assert.Equal(t, "luke@x.com", c.Email)
	assert.Nil(t, c.JediID)
	assert.Equal(t, []event.EventType{event.EventTypeCandidateRegistered}, f.publisher.Types())
}

func TestRegisterFieldValidation(t *testing.T) {
	f := newFixture(t)

	testCases := []struct {
		name  string
		in    RegistrationInput
		field string
	}{
		{"too young", RegistrationInput{Name: "Ben", PlanetID: f.tatooine.ID, Age: 19, Email: "ben@x.com"}, "age"},
		{"too old", RegistrationInput{Name: "Ben", PlanetID: f.tatooine.ID, Age: 101, Email: "ben@x.com"}, "age"},
		{"bad email", RegistrationInput{Name: "Ben", PlanetID: f.tatooine.ID, Age: 30, Email: "ben"}, "email"},
		{"blank name", RegistrationInput{Name: "   ", PlanetID: f.tatooine.ID, Age: 30, Email: "ben@x.com"}, "name"},
		{"no planet", RegistrationInput{Name: "Ben", Age: 30, Email: "ben@x.com"}, "planet"},
		{"unknown planet", RegistrationInput{Name: "Ben", PlanetID: 999, Age: 30, Email: "ben@x.com"}, "planet"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state := &session.State{}
			_, err := f.registration.Register(context.Background(), tc.in, state)

			var ve *apperror.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
			assert.Equal(t, session.PhaseUnregistered, state.Phase())
		})
	}
}

func TestRegisterBoundaryAges(t *testing.T) {
	f := newFixture(t)
	for _, age := range []int{20, 100} {
		_, err := f.registration.Register(context.Background(), RegistrationInput{
			Name: "Rey", PlanetID: f.naboo.ID, Age: age, Email: fmt.Sprintf("rey%d@x.com", age),
		}, &session.State{})
		assert.NoError(t, err, "age %d", age)
	}
}

func TestRegisterDuplicateEmailIgnoresCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.registration.Register(ctx, RegistrationInput{Name: "Luke", PlanetID: f.tatooine.ID, Age: 25, Email: "luke@x.com"}, &session.State{})
	require.NoError(t, err)

	_, err = f.registration.Register(ctx, RegistrationInput{Name: "Luke", PlanetID: f.naboo.ID, Age: 25, Email: "LUKE@x.com"}, &session.State{})
	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
}

func TestRegisterRejectedWhenJediIsFull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		c := f.addCandidate(t, fmt.Sprintf("padawan%d", i), f.tatooine.ID)
		f.assign(t, c.ID, f.yoda.ID)
	}

	state := &session.State{}
	_, err := f.registration.Register(ctx, RegistrationInput{
		Name: "Late", PlanetID: f.tatooine.ID, Age: 30, Email: "late@x.com",
	}, state)

	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, OverCapacityMessage, ve.Message)
	assert.Equal(t, session.PhaseUnregistered, state.Phase())

	total, err := f.store.CountEligibleCandidates(ctx, f.tatooine.ID)
	require.NoError(t, err)
	assert.Zero(t, total, "no candidate row may be written")
}
