package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"academy-service/internal/models"
	"academy-service/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(ctx, DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(ctx))
	return s
}

type academy struct {
	tatooine, naboo *models.Planet
	yoda, obiwan    *models.Jedi
}

func seedAcademy(t *testing.T, s *Store) academy {
	t.Helper()
	ctx := context.Background()
	a := academy{
		tatooine: &models.Planet{Name: "Tatooine"},
		naboo:    &models.Planet{Name: "Naboo"},
	}
	require.NoError(t, s.CreatePlanet(ctx, a.tatooine))
	require.NoError(t, s.CreatePlanet(ctx, a.naboo))
	a.yoda = &models.Jedi{Name: "Yoda", PlanetID: a.tatooine.ID}
	a.obiwan = &models.Jedi{Name: "Obi-Wan", PlanetID: a.naboo.ID}
	require.NoError(t, s.CreateJedi(ctx, a.yoda))
	require.NoError(t, s.CreateJedi(ctx, a.obiwan))
	return a
}

func newCandidate(t *testing.T, s *Store, name string, planetID int64) *models.Candidate {
	t.Helper()
	c := &models.Candidate{Name: name, PlanetID: planetID, Age: 25, Email: name + "@jedi.example"}
	require.NoError(t, s.CreateCandidate(context.Background(), c, models.DefaultPadawanLimit))
	return c
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestPlanetsAndJedi(t *testing.T) {
	s := newTestStore(t)
	a := seedAcademy(t, s)
	ctx := context.Background()

	planets, err := s.ListPlanets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Planet{*a.tatooine, *a.naboo}, planets)

	got, err := s.GetJedi(ctx, a.yoda.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yoda", got.Name)

	_, err = s.GetPlanet(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = s.CreateJedi(ctx, &models.Jedi{Name: "Ghost", PlanetID: 999})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateCandidateDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	a := seedAcademy(t, s)
	newCandidate(t, s, "luke", a.tatooine.ID)

	dup := &models.Candidate{Name: "Luke II", PlanetID: a.tatooine.ID, Age: 30, Email: "luke@jedi.example"}
	err := s.CreateCandidate(context.Background(), dup, models.DefaultPadawanLimit)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateCandidateCapacity(t *testing.T) {
	s := newTestStore(t)
	a := seedAcademy(t, s)
	ctx := context.Background()

	for i := 0; i < models.DefaultPadawanLimit; i++ {
		c := newCandidate(t, s, fmt.Sprintf("padawan%d", i), a.tatooine.ID)
		require.NoError(t, s.AssignMentor(ctx, c.ID, a.yoda.ID, models.DefaultPadawanLimit, nil))
	}

	late := &models.Candidate{Name: "late", PlanetID: a.tatooine.ID, Age: 40, Email: "late@jedi.example"}
	err := s.CreateCandidate(ctx, late, models.DefaultPadawanLimit)
	assert.ErrorIs(t, err, repository.ErrCapacity)

	// a second Jedi with a free slot reopens the planet
	require.NoError(t, s.CreateJedi(ctx, &models.Jedi{Name: "Mace", PlanetID: a.tatooine.ID}))
	assert.NoError(t, s.CreateCandidate(ctx, late, models.DefaultPadawanLimit))
}

func TestCreateCandidateRejectsAgeOutsideRange(t *testing.T) {
	s := newTestStore(t)
	a := seedAcademy(t, s)
	ctx := context.Background()

	for _, age := range []int{5, 19, 101} {
		c := &models.Candidate{Name: "kid", PlanetID: a.tatooine.ID, Age: age, Email: fmt.Sprintf("kid%d@jedi.example", age)}
		err := s.CreateCandidate(ctx, c, models.DefaultPadawanLimit)
		assert.ErrorIs(t, err, repository.ErrInvalid, "age %d", age)
		assert.Zero(t, c.ID)
	}

	total, err := s.CountEligibleCandidates(ctx, a.tatooine.ID)
	require.NoError(t, err)
	assert.Zero(t, total)

	for _, age := range []int{models.MinCandidateAge, models.MaxCandidateAge} {
		c := &models.Candidate{Name: "edge", PlanetID: a.tatooine.ID, Age: age, Email: fmt.Sprintf("edge%d@jedi.example", age)}
		assert.NoError(t, s.CreateCandidate(ctx, c, models.DefaultPadawanLimit))
	}
}

func TestCreateCandidateOnPlanetWithoutJedi(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	hoth := &models.Planet{Name: "Hoth"}
	require.NoError(t, s.CreatePlanet(ctx, hoth))

	c := &models.Candidate{Name: "han", PlanetID: hoth.ID, Age: 32, Email: "han@jedi.example"}
	require.NoError(t, s.CreateCandidate(ctx, c, models.DefaultPadawanLimit))
	assert.NotZero(t, c.ID)

	missing := &models.Candidate{Name: "ghost", PlanetID: 999, Age: 32, Email: "ghost@jedi.example"}
	err := s.CreateCandidate(ctx, missing, models.DefaultPadawanLimit)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEligibleCandidates(t *testing.T) {
	s := newTestStore(t)
	a := seedAcademy(t, s)
	ctx := context.Background()

	luke := newCandidate(t, s, "luke", a.tatooine.ID)
	leia := newCandidate(t, s, "leia", a.tatooine.ID)
	newCandidate(t, s, "padme", a.naboo.ID)
	require.NoError(t, s.AssignMentor(ctx, luke.ID, a.yoda.ID, models.DefaultPadawanLimit, nil))

	total, err := s.CountEligibleCandidates(ctx, a.tatooine.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	list, err := s.ListEligibleCandidates(ctx, a.tatooine.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, leia.ID, list[0].ID)
}

func TestAssignMentor(t *testing.T) {
	s := newTestStore(t)
	a := seedAcademy(t, s)
	ctx := context.Background()
	luke := newCandidate(t, s, "luke", a.tatooine.ID)

	notified := 0
	err := s.AssignMentor(ctx, luke.ID, a.yoda.ID, models.DefaultPadawanLimit, func(context.Context) error {
		notified++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, notified)

	got, err := s.GetCandidate(ctx, luke.ID)
	require.NoError(t, err)
	require.NotNil(t, got.JediID)
	assert.Equal(t, a.yoda.ID, *got.JediID)

	err = s.AssignMentor(ctx, luke.ID, a.yoda.ID, models.DefaultPadawanLimit, nil)
	assert.ErrorIs(t, err, repository.ErrAlreadyAssigned)

	yoda, err := s.GetJedi(ctx, a.yoda.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, yoda.PadawanCount, "failed assignment must not leave the counter bumped")

	assert.ErrorIs(t, s.AssignMentor(ctx, 999, a.yoda.ID, 3, nil), repository.ErrNotFound)
	assert.ErrorIs(t, s.AssignMentor(ctx, luke.ID, 999, 3, nil), repository.ErrNotFound)
}

func TestAssignMentorRollsBackWhenNotifyFails(t *testing.T) {
	s := newTestStore(t)
	a := seedAcademy(t, s)
	ctx := context.Background()
	luke := newCandidate(t, s, "luke", a.tatooine.ID)

	smtpDown := errors.New("smtp down")
	err := s.AssignMentor(ctx, luke.ID, a.yoda.ID, models.DefaultPadawanLimit, func(context.Context) error {
		return smtpDown
	})
	assert.ErrorIs(t, err, smtpDown)

	got, err := s.GetCandidate(ctx, luke.ID)
	require.NoError(t, err)
	assert.Nil(t, got.JediID)

	yoda, err := s.GetJedi(ctx, a.yoda.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, yoda.PadawanCount)
}

func TestConcurrentAcceptsRespectLimit(t *testing.T) {
	s := newTestStore(t)
	a := seedAcademy(t, s)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		c := newCandidate(t, s, fmt.Sprintf("early%d", i), a.tatooine.ID)
		require.NoError(t, s.AssignMentor(ctx, c.ID, a.yoda.ID, models.DefaultPadawanLimit, nil))
	}

	const racers = 8
	ids := make([]int64, racers)
	for i := range ids {
		ids[i] = newCandidate(t, s, fmt.Sprintf("racer%d", i), a.tatooine.ID).ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			err := s.AssignMentor(ctx, id, a.yoda.ID, models.DefaultPadawanLimit, nil)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, repository.ErrCapacity)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	yoda, err := s.GetJedi(ctx, a.yoda.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPadawanLimit, yoda.PadawanCount)
}

func TestJediSummaries(t *testing.T) {
	s := newTestStore(t)
	a := seedAcademy(t, s)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		c := newCandidate(t, s, fmt.Sprintf("t%d", i), a.tatooine.ID)
		require.NoError(t, s.AssignMentor(ctx, c.ID, a.yoda.ID, models.DefaultPadawanLimit, nil))
	}
	padme := newCandidate(t, s, "padme", a.naboo.ID)
	require.NoError(t, s.AssignMentor(ctx, padme.ID, a.obiwan.ID, models.DefaultPadawanLimit, nil))

	all, err := s.ListJediSummaries(ctx, 0, 0, 10)
	require.NoError(t, err)
	want := []models.JediSummary{
		{ID: a.yoda.ID, Name: "Yoda", PlanetID: a.tatooine.ID, PlanetName: "Tatooine", PadawansCount: 2},
		{ID: a.obiwan.ID, Name: "Obi-Wan", PlanetID: a.naboo.ID, PlanetName: "Naboo", PadawansCount: 1},
	}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("ListJediSummaries mismatch (-want +got):\n%s", diff)
	}

	total, err := s.CountJediSummaries(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	moreThanOne, err := s.ListJediSummaries(ctx, 2, 0, 10)
	require.NoError(t, err)
	require.Len(t, moreThanOne, 1)
	assert.Equal(t, "Yoda", moreThanOne[0].Name)
}

func TestChallengeOrderIsExplicit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var qs []*models.Question
	for _, text := range []string{"first", "second", "third"} {
		q := &models.Question{Text: text}
		require.NoError(t, s.CreateQuestion(ctx, q))
		qs = append(qs, q)
	}
	order := &models.Order{Name: "Jedi Order", Code: 123}
	require.NoError(t, s.CreateOrder(ctx, order))

	ch := &models.Challenge{OrderID: order.ID, QuestionIDs: []int64{qs[2].ID, qs[0].ID, qs[1].ID}}
	require.NoError(t, s.CreateChallenge(ctx, ch))

	got, err := s.GetChallengeByOrderCode(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, ch.ID, got.ID)
	assert.Equal(t, 123, got.OrderCode)
	assert.Equal(t, []int64{qs[2].ID, qs[0].ID, qs[1].ID}, got.QuestionIDs)

	_, err = s.GetChallengeByOrderCode(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = s.CreateOrder(ctx, &models.Order{Name: "Clone", Code: 123})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateAnswersIsAllOrNothing(t *testing.T) {
	s := newTestStore(t)
	a := seedAcademy(t, s)
	ctx := context.Background()
	luke := newCandidate(t, s, "luke", a.tatooine.ID)

	q1 := &models.Question{Text: "Can you lift a rock?"}
	q2 := &models.Question{Text: "Do you fear?"}
	require.NoError(t, s.CreateQuestion(ctx, q1))
	require.NoError(t, s.CreateQuestion(ctx, q2))

	require.NoError(t, s.CreateAnswers(ctx, []models.Answer{
		{QuestionID: q1.ID, CandidateID: luke.ID, Value: true},
	}))

	err := s.CreateAnswers(ctx, []models.Answer{
		{QuestionID: q2.ID, CandidateID: luke.ID, Value: false},
		{QuestionID: q1.ID, CandidateID: luke.ID, Value: false},
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	answers, err := s.ListAnswersByCandidate(ctx, luke.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, q1.ID, answers[0].QuestionID)
	assert.True(t, answers[0].Value)
	assert.Equal(t, "Can you lift a rock?", answers[0].QuestionText)
}
