package sqlstore

import (
	"context"
	"fmt"

	"academy-service/internal/models"

	"github.com/jmoiron/sqlx"
)

func (s *Store) CreateAnswers(ctx context.Context, answers []models.Answer) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		for i := range answers {
			a := &answers[i]
			id, err := insertReturningID(ctx, tx,
				s.db.Rebind(`INSERT INTO answers (question_id, candidate_id, value) VALUES (?, ?, ?) RETURNING id`),
				a.QuestionID, a.CandidateID, a.Value)
			if err != nil {
				return fmt.Errorf("create answer for question %d: %w", a.QuestionID, err)
			}
			a.ID = id
		}
		return nil
	})
}

func (s *Store) ListAnswersByCandidate(ctx context.Context, candidateID int64) ([]models.Answer, error) {
	answers := []models.Answer{}
	err := s.db.SelectContext(ctx, &answers, s.db.Rebind(`
		SELECT a.id, a.question_id, a.candidate_id, a.value, q.text AS question_text
		FROM answers a JOIN questions q ON q.id = a.question_id
		WHERE a.candidate_id = ?
		ORDER BY a.id`), candidateID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}
