package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"academy-service/internal/apperror"
	"academy-service/internal/event"
	"academy-service/internal/metrics"
	"academy-service/internal/models"
	"academy-service/internal/repository"
	"academy-service/internal/session"

	"go.uber.org/zap"
)

var errNotRegistered = &apperror.ForbiddenError{Message: "register as a candidate first"}

// ParseAnswer reads a yes/no answer as submitted by the quiz form.
func ParseAnswer(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, apperror.NewValidation("answer_text", "Select a valid choice.")
	}
	return v, nil
}

type StepResult struct {
	Redirect  string
	Completed bool
}

type QuizService struct {
	challenges *ChallengeService
	answers    repository.AnswerRepository
	publisher  event.Publisher
	logger     *zap.Logger
}

func NewQuizService(challenges *ChallengeService, answers repository.AnswerRepository, publisher event.Publisher, logger *zap.Logger) *QuizService {
	return &QuizService{challenges: challenges, answers: answers, publisher: publisher, logger: logger}
}

func (s *QuizService) View(ctx context.Context, state *session.State, code int, questionID int64) (*models.Question, error) {
	if state.Phase() != session.PhaseAnswering {
		return nil, errNotRegistered
	}
	return s.challenges.QuestionAt(ctx, code, questionID)
}

// Submit records the answer to questionID and moves to the next question.
// After the last question all answers are written and the state is reset,
// whether or not writing them succeeded.
func (s *QuizService) Submit(ctx context.Context, state *session.State, code int, questionID int64, value bool) (*StepResult, error) {
	if state.Phase() != session.PhaseAnswering {
		return nil, errNotRegistered
	}
	if _, err := s.challenges.QuestionAt(ctx, code, questionID); err != nil {
		return nil, err
	}
	if err := state.RecordAnswer(questionID, value); err != nil {
		return nil, errNotRegistered
	}

	next, done, err := s.challenges.NextQuestion(ctx, code, questionID)
	if err != nil {
		return nil, err
	}
	if !done {
		return &StepResult{Redirect: QuestionPath(code, next)}, nil
	}

	if err := state.Complete(); err != nil {
		return nil, errNotRegistered
	}
	defer state.Reset()

	if err := s.flush(ctx, state, code); err != nil {
		metrics.QuizCompletions.WithLabelValues(metrics.StatusFailure).Inc()
		return &StepResult{Completed: true}, err
	}
	metrics.QuizCompletions.WithLabelValues(metrics.StatusSuccess).Inc()
	return &StepResult{Redirect: DonePath, Completed: true}, nil
}

// flush writes one answer per challenge question, in challenge order, in a
// single transaction.
func (s *QuizService) flush(ctx context.Context, state *session.State, code int) error {
	ch, err := s.challenges.Challenge(ctx, code)
	if err != nil {
		return err
	}

	answers := make([]models.Answer, 0, len(ch.QuestionIDs))
	for _, qid := range ch.QuestionIDs {
		value, ok := state.Answers[qid]
		if !ok {
			return &apperror.ForbiddenError{Message: fmt.Sprintf("question %d was not answered", qid)}
		}
		answers = append(answers, models.Answer{QuestionID: qid, CandidateID: state.CandidateID, Value: value})
	}

	err = s.answers.CreateAnswers(ctx, answers)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		s.logger.Warn("duplicate quiz submission", zap.Int64("candidate_id", state.CandidateID))
		return &apperror.ForbiddenError{Message: "answers were already submitted"}
	case errors.Is(err, repository.ErrNotFound):
		return &apperror.NotFoundError{Resource: fmt.Sprintf("candidate %d", state.CandidateID)}
	case err != nil:
		return fmt.Errorf("save answers: %w", err)
	}

	s.logger.Info("quiz completed",
		zap.Int64("candidate_id", state.CandidateID),
		zap.Int("order_code", code),
		zap.Int("answers", len(answers)),
	)
	publish(ctx, s.publisher, s.logger, &event.QuizCompletedEvent{
		BaseEvent:   event.NewBaseEvent(event.EventTypeQuizCompleted),
		CandidateID: state.CandidateID,
		OrderCode:   code,
		Answers:     len(answers),
	})
	return nil
}
