package service

import (
	"context"
	"errors"
	"fmt"

	"academy-service/internal/apperror"
	"academy-service/internal/event"
	"academy-service/internal/metrics"
	"academy-service/internal/models"
	"academy-service/internal/notify"
	"academy-service/internal/repository"
	"academy-service/internal/session"

	"go.uber.org/zap"
)

// MentorFullMessage is returned when a Jedi tries to take one padawan too many.
const MentorFullMessage = "You already have 3 padawans. You cannot take new padawans for now."

var errNoMentor = &apperror.ForbiddenError{Message: "select yourself from the Jedi list first"}

type MentorStore interface {
	repository.JediRepository
	repository.CandidateRepository
	repository.AnswerRepository
}

type CandidateDetail struct {
	Candidate models.Candidate `json:"candidate"`
	Jedi      models.Jedi      `json:"jedi"`
	Answers   []models.Answer  `json:"answers"`
}

type MentorService struct {
	store     MentorStore
	mailer    notify.Mailer
	publisher event.Publisher
	mailFrom  string
	limit     int
	pageSize  int
	logger    *zap.Logger
}

func NewMentorService(
	store MentorStore,
	mailer notify.Mailer,
	publisher event.Publisher,
	mailFrom string,
	limit, pageSize int,
	logger *zap.Logger,
) *MentorService {
	return &MentorService{
		store:     store,
		mailer:    mailer,
		publisher: publisher,
		mailFrom:  mailFrom,
		limit:     limit,
		pageSize:  pageSizeOrDefault(pageSize),
		logger:    logger,
	}
}

func (s *MentorService) ListJedi(ctx context.Context) ([]models.Jedi, error) {
	return s.store.ListJedi(ctx)
}

// SelectMentor binds the Jedi to the session. There is no authentication:
// whoever holds the session acts as that Jedi.
func (s *MentorService) SelectMentor(ctx context.Context, state *session.State, jediID int64) error {
	if jediID <= 0 {
		return apperror.NewValidation("jedi", "This field is required.")
	}
	if _, err := s.store.GetJedi(ctx, jediID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewValidation("jedi", "Select a valid choice.")
		}
		return err
	}
	state.BindMentor(jediID)
	return nil
}

func (s *MentorService) mentor(ctx context.Context, state *session.State) (*models.Jedi, error) {
	if !state.HasMentor() {
		return nil, errNoMentor
	}
	jedi, err := s.store.GetJedi(ctx, state.JediID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &apperror.NotFoundError{Resource: fmt.Sprintf("jedi %d", state.JediID)}
	}
	return jedi, err
}

// EligibleCandidates lists unassigned candidates of the mentor's planet.
func (s *MentorService) EligibleCandidates(ctx context.Context, state *session.State, page string) (*models.Page[models.Candidate], error) {
	jedi, err := s.mentor(ctx, state)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountEligibleCandidates(ctx, jedi.PlanetID)
	if err != nil {
		return nil, err
	}
	w, err := resolvePage(page, total, s.pageSize)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListEligibleCandidates(ctx, jedi.PlanetID, w.offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	return newPage(items, w, s.pageSize, total), nil
}

// reviewable loads the mentor and an unassigned candidate of the same planet.
func (s *MentorService) reviewable(ctx context.Context, state *session.State, candidateID int64) (*models.Jedi, *models.Candidate, error) {
	jedi, err := s.mentor(ctx, state)
	if err != nil {
		return nil, nil, err
	}
	candidate, err := s.store.GetCandidate(ctx, candidateID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && candidate.IsPadawan()) {
		return nil, nil, &apperror.NotFoundError{Resource: fmt.Sprintf("candidate %d", candidateID)}
	}
	if err != nil {
		return nil, nil, err
	}
	if candidate.PlanetID != jedi.PlanetID {
		return nil, nil, &apperror.ForbiddenError{Message: "candidate is not from your planet"}
	}
	return jedi, candidate, nil
}

func (s *MentorService) CandidateDetail(ctx context.Context, state *session.State, candidateID int64) (*CandidateDetail, error) {
	jedi, candidate, err := s.reviewable(ctx, state, candidateID)
	if err != nil {
		return nil, err
	}
	answers, err := s.store.ListAnswersByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}
	return &CandidateDetail{Candidate: *candidate, Jedi: *jedi, Answers: answers}, nil
}

// Accept makes the candidate a padawan of the session's mentor. The
// acceptance mail is sent inside the assignment; if it cannot be sent
// nothing is assigned.
func (s *MentorService) Accept(ctx context.Context, state *session.State, candidateID int64) (*models.Candidate, error) {
	jedi, candidate, err := s.reviewable(ctx, state, candidateID)
	if err != nil {
		return nil, err
	}
	if jedi.PadawanCount >= s.limit {
		metrics.PadawanAcceptances.WithLabelValues(metrics.StatusRejected).Inc()
		return nil, &apperror.ForbiddenError{Message: MentorFullMessage}
	}

	msg := notify.Acceptance(s.mailFrom, candidate.Name, candidate.Email, jedi.Name)
	sendMail := func(ctx context.Context) error {
		if err := s.mailer.Send(ctx, msg); err != nil {
			metrics.MailsSent.WithLabelValues(metrics.StatusFailure).Inc()
			return &apperror.NotificationError{Err: err}
		}
		metrics.MailsSent.WithLabelValues(metrics.StatusSuccess).Inc()
		return nil
	}

	err = s.store.AssignMentor(ctx, candidate.ID, jedi.ID, s.limit, sendMail)
	var notifyErr *apperror.NotificationError
	switch {
	case errors.As(err, &notifyErr):
		metrics.PadawanAcceptances.WithLabelValues(metrics.StatusFailure).Inc()
		s.logger.Error("acceptance mail failed, assignment rolled back",
			zap.Int64("candidate_id", candidate.ID), zap.Int64("jedi_id", jedi.ID), zap.Error(err))
		return nil, notifyErr
	case errors.Is(err, repository.ErrCapacity):
		metrics.PadawanAcceptances.WithLabelValues(metrics.StatusRejected).Inc()
		return nil, &apperror.ForbiddenError{Message: MentorFullMessage}
	case errors.Is(err, repository.ErrAlreadyAssigned):
		metrics.PadawanAcceptances.WithLabelValues(metrics.StatusRejected).Inc()
		return nil, &apperror.ForbiddenError{Message: "candidate was already accepted by another Jedi"}
	case errors.Is(err, repository.ErrNotFound):
		return nil, &apperror.NotFoundError{Resource: fmt.Sprintf("candidate %d", candidate.ID)}
	case err != nil:
		return nil, fmt.Errorf("accept padawan: %w", err)
	}
	metrics.PadawanAcceptances.WithLabelValues(metrics.StatusSuccess).Inc()

	jediID := jedi.ID
	candidate.JediID = &jediID
	s.logger.Info("padawan accepted", zap.Int64("candidate_id", candidate.ID), zap.Int64("jedi_id", jedi.ID))
	publish(ctx, s.publisher, s.logger, &event.PadawanAcceptedEvent{
		BaseEvent:   event.NewBaseEvent(event.EventTypePadawanAccepted),
		CandidateID: candidate.ID,
		JediID:      jedi.ID,
	})
	return candidate, nil
}
