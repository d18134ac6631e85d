// Package repository defines the persistence contract of the academy.
// Backends live in the sqlstore and mongostore subpackages.
package repository

import (
	"context"
	"errors"

	"academy-service/internal/models"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("duplicate record")
	ErrCapacity        = errors.New("padawan limit reached")
	ErrAlreadyAssigned = errors.New("candidate already has a mentor")
	ErrInvalid         = errors.New("record violates a constraint")
)

type PlanetRepository interface {
	CreatePlanet(ctx context.Context, planet *models.Planet) error
	GetPlanet(ctx context.Context, id int64) (*models.Planet, error)
	ListPlanets(ctx context.Context) ([]models.Planet, error)
}

type JediRepository interface {
	CreateJedi(ctx context.Context, jedi *models.Jedi) error
	GetJedi(ctx context.Context, id int64) (*models.Jedi, error)
	ListJedi(ctx context.Context) ([]models.Jedi, error)
	// CountJediSummaries and ListJediSummaries only consider Jedi with at
	// least minPadawans assigned candidates. Counts are derived from the
	// candidates themselves, ordered by Jedi id.
	CountJediSummaries(ctx context.Context, minPadawans int) (int, error)
	ListJediSummaries(ctx context.Context, minPadawans, offset, limit int) ([]models.JediSummary, error)
}

type CandidateRepository interface {
	// CreateCandidate inserts the candidate unless every Jedi of its planet
	// already mentors limit padawans (ErrCapacity). A planet without Jedi
	// accepts candidates. A taken e-mail yields ErrDuplicate.
	CreateCandidate(ctx context.Context, candidate *models.Candidate, limit int) error
	GetCandidate(ctx context.Context, id int64) (*models.Candidate, error)
	CountEligibleCandidates(ctx context.Context, planetID int64) (int, error)
	ListEligibleCandidates(ctx context.Context, planetID int64, offset, limit int) ([]models.Candidate, error)
	// AssignMentor atomically bumps the Jedi's padawan counter while it is
	// below limit, binds the still unassigned candidate to the Jedi and
	// runs notify. Nothing is persisted unless notify returns nil.
	AssignMentor(ctx context.Context, candidateID, jediID int64, limit int, notify func(context.Context) error) error
}

type ChallengeRepository interface {
	CreateQuestion(ctx context.Context, question *models.Question) error
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByCode(ctx context.Context, code int) (*models.Order, error)
	CreateChallenge(ctx context.Context, challenge *models.Challenge) error
	GetChallengeByOrderCode(ctx context.Context, code int) (*models.Challenge, error)
}

type AnswerRepository interface {
	// CreateAnswers writes all answers or none of them.
	CreateAnswers(ctx context.Context, answers []models.Answer) error
	ListAnswersByCandidate(ctx context.Context, candidateID int64) ([]models.Answer, error)
}

type Store interface {
	PlanetRepository
	JediRepository
	CandidateRepository
	ChallengeRepository
	AnswerRepository

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
