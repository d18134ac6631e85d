package service

import (
	"context"
	"errors"
	"fmt"

	"academy-service/internal/apperror"
	"academy-service/internal/models"
	"academy-service/internal/repository"
)

const DonePath = "/challenge/done/"

// QuestionPath is the quiz step URL of question questionID in order code.
func QuestionPath(code int, questionID int64) string {
	return fmt.Sprintf("/challenge/order_%d_%d/", code, questionID)
}

// ChallengeService walks the ordered questions of a challenge.
type ChallengeService struct {
	repo repository.ChallengeRepository
}

func NewChallengeService(repo repository.ChallengeRepository) *ChallengeService {
	return &ChallengeService{repo: repo}
}

func (s *ChallengeService) challenge(ctx context.Context, code int) (*models.Challenge, error) {
	ch, err := s.repo.GetChallengeByOrderCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &apperror.NotFoundError{Resource: fmt.Sprintf("challenge for order %d", code)}
	}
	return ch, err
}

// NextQuestion returns the question following questionID in the challenge
// of order code. done is true when questionID is the last question, and
// also when it is not part of the challenge at all.
func (s *ChallengeService) NextQuestion(ctx context.Context, code int, questionID int64) (next int64, done bool, err error) {
	ch, err := s.challenge(ctx, code)
	if err != nil {
		return 0, false, err
	}
	next, ok := ch.Next(questionID)
	return next, !ok, nil
}

// QuestionAt resolves questionID as a member of the challenge of order code.
func (s *ChallengeService) QuestionAt(ctx context.Context, code int, questionID int64) (*models.Question, error) {
	ch, err := s.challenge(ctx, code)
	if err != nil {
		return nil, err
	}
	if ch.Position(questionID) < 0 {
		return nil, &apperror.NotFoundError{Resource: fmt.Sprintf("question %d", questionID)}
	}
	q, err := s.repo.GetQuestion(ctx, questionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &apperror.NotFoundError{Resource: fmt.Sprintf("question %d", questionID)}
	}
	return q, err
}

func (s *ChallengeService) FirstQuestion(ctx context.Context, code int) (int64, error) {
	ch, err := s.challenge(ctx, code)
	if err != nil {
		return 0, err
	}
	if len(ch.QuestionIDs) == 0 {
		return 0, &apperror.NotFoundError{Resource: fmt.Sprintf("questions of order %d", code)}
	}
	return ch.QuestionIDs[0], nil
}

// Challenge returns the challenge of order code with its question order.
func (s *ChallengeService) Challenge(ctx context.Context, code int) (*models.Challenge, error) {
	return s.challenge(ctx, code)
}
