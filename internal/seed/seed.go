// Package seed loads the academy reference data (planets, Jedi, questions,
// orders and their challenges) from a YAML fixture file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"academy-service/internal/models"
	"academy-service/internal/repository"

	"gopkg.in/yaml.v3"
)

// ErrInvalidFixture is returned by Apply when the fixture fails Validate.
var ErrInvalidFixture = errors.New("invalid fixture")

type Fixture struct {
	Planets    []PlanetFixture    `yaml:"planets"`
	Jedi       []JediFixture      `yaml:"jedi"`
	Questions  []QuestionFixture  `yaml:"questions"`
	Orders     []OrderFixture     `yaml:"orders"`
	Candidates []CandidateFixture `yaml:"candidates"`
}

// PlanetFixture and QuestionFixture may carry a short key other entries use
// to refer to them. Without a key they are referred to by name or text.
type PlanetFixture struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type JediFixture struct {
	Name   string `yaml:"name"`
	Planet string `yaml:"planet"`
}

type QuestionFixture struct {
	Key  string `yaml:"key"`
	Text string `yaml:"text"`
}

// OrderFixture creates the order and, when Questions is not empty, its
// challenge with the questions in the listed order.
type OrderFixture struct {
	Name      string   `yaml:"name"`
	Code      int      `yaml:"code"`
	Questions []string `yaml:"questions"`
}

type CandidateFixture struct {
	Name   string `yaml:"name"`
	Planet string `yaml:"planet"`
	Age    int    `yaml:"age"`
	Email  string `yaml:"email"`
	Jedi   string `yaml:"jedi"`
}

// Result counts what Apply created.
type Result struct {
	Planets    int
	Jedi       int
	Questions  int
	Orders     int
	Challenges int
	Candidates int
}

func (r Result) String() string {
	return fmt.Sprintf("%d planets, %d jedi, %d questions, %d orders, %d challenges, %d candidates",
		r.Planets, r.Jedi, r.Questions, r.Orders, r.Challenges, r.Candidates)
}

func Load(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

func LoadFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer file.Close()
	return Load(file)
}

type refs map[string]int64

func (r refs) add(id int64, names ...string) {
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			r[strings.ToLower(name)] = id
		}
	}
}

func (r refs) resolve(kind, name string) (int64, error) {
	id, ok := r[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown %s %q", kind, name)
	}
	return id, nil
}

// Validate checks references, candidate ages and that every assigned
// candidate lives on the planet of its Jedi, without touching a store.
func (f *Fixture) Validate() error {
	planets, jedi, questions := refs{}, refs{}, refs{}
	for i, pf := range f.Planets {
		planets.add(int64(i+1), pf.Key, pf.Name)
	}

	jediPlanet := make(map[int64]int64, len(f.Jedi))
	for i, jf := range f.Jedi {
		planetID, err := planets.resolve("planet", jf.Planet)
		if err != nil {
			return fmt.Errorf("jedi %q: %w", jf.Name, err)
		}
		jedi.add(int64(i+1), jf.Name)
		jediPlanet[int64(i+1)] = planetID
	}

	for i, qf := range f.Questions {
		questions.add(int64(i+1), qf.Key, qf.Text)
	}
	for _, of := range f.Orders {
		for _, ref := range of.Questions {
			if _, err := questions.resolve("question", ref); err != nil {
				return fmt.Errorf("order %d: %w", of.Code, err)
			}
		}
	}

	for _, cf := range f.Candidates {
		if !models.ValidAge(cf.Age) {
			return fmt.Errorf("candidate %q: age %d is outside %d-%d",
				cf.Email, cf.Age, models.MinCandidateAge, models.MaxCandidateAge)
		}
		planetID, err := planets.resolve("planet", cf.Planet)
		if err != nil {
			return fmt.Errorf("candidate %q: %w", cf.Email, err)
		}
		if cf.Jedi == "" {
			continue
		}
		jediID, err := jedi.resolve("jedi", cf.Jedi)
		if err != nil {
			return fmt.Errorf("candidate %q: %w", cf.Email, err)
		}
		if jediPlanet[jediID] != planetID {
			return fmt.Errorf("candidate %q: jedi %q trains on another planet", cf.Email, cf.Jedi)
		}
	}
	return nil
}

// Apply validates the fixture and writes it to store. Records are created
// in dependency order and the first failure stops the run; records written
// before it stay in the store.
func Apply(ctx context.Context, store repository.Store, f *Fixture, padawanLimit int) (Result, error) {
	var res Result
	if err := f.Validate(); err != nil {
		return res, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}
	planets, jedi, questions := refs{}, refs{}, refs{}

	for _, pf := range f.Planets {
		p := &models.Planet{Name: pf.Name}
		if err := store.CreatePlanet(ctx, p); err != nil {
			return res, fmt.Errorf("planet %q: %w", pf.Name, err)
		}
		planets.add(p.ID, pf.Key, pf.Name)
		res.Planets++
	}

	for _, jf := range f.Jedi {
		planetID, err := planets.resolve("planet", jf.Planet)
		if err != nil {
			return res, fmt.Errorf("jedi %q: %w", jf.Name, err)
		}
		j := &models.Jedi{Name: jf.Name, PlanetID: planetID}
		if err := store.CreateJedi(ctx, j); err != nil {
			return res, fmt.Errorf("jedi %q: %w", jf.Name, err)
		}
		jedi.add(j.ID, jf.Name)
		res.Jedi++
	}

	for _, qf := range f.Questions {
		q := &models.Question{Text: qf.Text}
		if err := store.CreateQuestion(ctx, q); err != nil {
			return res, fmt.Errorf("question %q: %w", qf.Text, err)
		}
		questions.add(q.ID, qf.Key, qf.Text)
		res.Questions++
	}

	for _, of := range f.Orders {
		ids := make([]int64, 0, len(of.Questions))
		for _, ref := range of.Questions {
			id, err := questions.resolve("question", ref)
			if err != nil {
				return res, fmt.Errorf("order %d: %w", of.Code, err)
			}
			ids = append(ids, id)
		}

		o := &models.Order{Name: of.Name, Code: of.Code}
		if err := store.CreateOrder(ctx, o); err != nil {
			return res, fmt.Errorf("order %d: %w", of.Code, err)
		}
		res.Orders++

		if len(ids) == 0 {
			continue
		}
		if err := store.CreateChallenge(ctx, &models.Challenge{OrderID: o.ID, QuestionIDs: ids}); err != nil {
			return res, fmt.Errorf("challenge for order %d: %w", of.Code, err)
		}
		res.Challenges++
	}

	for _, cf := range f.Candidates {
		planetID, err := planets.resolve("planet", cf.Planet)
		if err != nil {
			return res, fmt.Errorf("candidate %q: %w", cf.Email, err)
		}
		c := &models.Candidate{
			Name:     cf.Name,
			PlanetID: planetID,
			Age:      cf.Age,
			Email:    strings.ToLower(strings.TrimSpace(cf.Email)),
		}
		if err := store.CreateCandidate(ctx, c, padawanLimit); err != nil {
			return res, fmt.Errorf("candidate %q: %w", cf.Email, err)
		}
		res.Candidates++

		if cf.Jedi == "" {
			continue
		}
		jediID, err := jedi.resolve("jedi", cf.Jedi)
		if err != nil {
			return res, fmt.Errorf("candidate %q: %w", cf.Email, err)
		}
		if err := store.AssignMentor(ctx, c.ID, jediID, padawanLimit, nil); err != nil {
			return res, fmt.Errorf("assign %q to %q: %w", cf.Email, cf.Jedi, err)
		}
	}

	return res, nil
}
