package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academy-service/internal/apperror"
	"academy-service/internal/event"
	"academy-service/internal/metrics"
	"academy-service/internal/models"
	"academy-service/internal/repository"
	"academy-service/internal/session"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// OverCapacityMessage is shown when every Jedi of the candidate's planet is full.
const OverCapacityMessage = "Unfortunately we cannot accept you at the moment. " +
	"The Jedi of your planet already has 3 padawans."

type RegistrationInput struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	PlanetID int64  `json:"planet" form:"planet" validate:"required,gt=0"`
	Age      int    `json:"age" form:"age" validate:"required,gte=20,lte=100"`
	Email    string `json:"email" form:"email" validate:"required,max=254,email"`
}

// RegistrationForm describes what the registration form accepts.
type RegistrationForm struct {
	Planets []models.Planet `json:"planets"`
	MinAge  int             `json:"min_age"`
	MaxAge  int             `json:"max_age"`
}

type RegistrationStore interface {
	repository.PlanetRepository
	repository.CandidateRepository
}

type RegistrationService struct {
	store      RegistrationStore
	challenges *ChallengeService
	publisher  event.Publisher
	validate   *validator.Validate
	orderCode  int
	limit      int
	logger     *zap.Logger
}

func NewRegistrationService(
	store RegistrationStore,
	challenges *ChallengeService,
	publisher event.Publisher,
	orderCode, limit int,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		store:      store,
		challenges: challenges,
		publisher:  publisher,
		validate:   newValidator(),
		orderCode:  orderCode,
		limit:      limit,
		logger:     logger,
	}
}

func (s *RegistrationService) Form(ctx context.Context) (*RegistrationForm, error) {
	planets, err := s.store.ListPlanets(ctx)
	if err != nil {
		return nil, err
	}
	return &RegistrationForm{Planets: planets, MinAge: models.MinCandidateAge, MaxAge: models.MaxCandidateAge}, nil
}

// Register validates and stores a candidate, binds it to the session and
// returns the URL of the first quiz question.
func (s *RegistrationService) Register(ctx context.Context, in RegistrationInput, state *session.State) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validateStruct(s.validate, in); err != nil {
		metrics.Registrations.WithLabelValues(metrics.StatusInvalid).Inc()
		return "", err
	}

	if _, err := s.store.GetPlanet(ctx, in.PlanetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.Registrations.WithLabelValues(metrics.StatusInvalid).Inc()
			return "", apperror.NewValidation("planet", "Select a valid choice.")
		}
		return "", err
	}

	candidate := &models.Candidate{
		Name:     in.Name,
		PlanetID: in.PlanetID,
		Age:      in.Age,
		Email:    in.Email,
	}
	err := s.store.CreateCandidate(ctx, candidate, s.limit)
	switch {
	case errors.Is(err, repository.ErrCapacity):
		metrics.Registrations.WithLabelValues(metrics.StatusRejected).Inc()
		return "", &apperror.ValidationError{Message: OverCapacityMessage}
	case errors.Is(err, repository.ErrDuplicate):
		metrics.Registrations.WithLabelValues(metrics.StatusInvalid).Inc()
		return "", apperror.NewValidation("email", "Candidate with this Email already exists.")
	case errors.Is(err, repository.ErrNotFound):
		metrics.Registrations.WithLabelValues(metrics.StatusInvalid).Inc()
		return "", apperror.NewValidation("planet", "Select a valid choice.")
	case errors.Is(err, repository.ErrInvalid):
		metrics.Registrations.WithLabelValues(metrics.StatusInvalid).Inc()
		return "", apperror.NewValidation("age", fmt.Sprintf("Age must be between %d and %d.", models.MinCandidateAge, models.MaxCandidateAge))
	case err != nil:
		return "", fmt.Errorf("register candidate: %w", err)
	}
	metrics.Registrations.WithLabelValues(metrics.StatusSuccess).Inc()

	state.BindCandidate(candidate.ID, s.orderCode)
	s.logger.Info("candidate registered",
		zap.Int64("candidate_id", candidate.ID),
		zap.Int64("planet_id", candidate.PlanetID),
	)

	publish(ctx, s.publisher, s.logger, &event.CandidateRegisteredEvent{
		BaseEvent:   event.NewBaseEvent(event.EventTypeCandidateRegistered),
		CandidateID: candidate.ID,
		PlanetID:    candidate.PlanetID,
		Email:       candidate.Email,
	})

	first, err := s.challenges.FirstQuestion(ctx, s.orderCode)
	if err != nil {
		s.logger.Warn("no challenge for registration order, using question 1",
			zap.Int("order_code", s.orderCode), zap.Error(err))
		first = 1
	}
	return QuestionPath(s.orderCode, first), nil
}

// publish sends e best effort; a broker outage must not fail the request.
func publish(ctx context.Context, p event.Publisher, logger *zap.Logger, e event.Event) {
	if err := p.Publish(ctx, e); err != nil {
		logger.Warn("failed to publish event", zap.String("type", string(e.EventType())), zap.Error(err))
	}
}
