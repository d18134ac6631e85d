package sqlstore

import (
	"context"
	"fmt"

	"academy-service/internal/models"

	"github.com/jmoiron/sqlx"
)

func (s *Store) CreateQuestion(ctx context.Context, question *models.Question) error {
	id, err := insertReturningID(ctx, s.db,
		s.db.Rebind(`INSERT INTO questions (text) VALUES (?) RETURNING id`), question.Text)
	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	question.ID = id
	return nil
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	var question models.Question
	err := s.db.GetContext(ctx, &question, s.db.Rebind(`SELECT id, text FROM questions WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("get question %d: %w", id, mapError(err))
	}
	return &question, nil
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	id, err := insertReturningID(ctx, s.db,
		s.db.Rebind(`INSERT INTO orders (name, code) VALUES (?, ?) RETURNING id`), order.Name, order.Code)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	order.ID = id
	return nil
}

func (s *Store) GetOrderByCode(ctx context.Context, code int) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, s.db.Rebind(`SELECT id, name, code FROM orders WHERE code = ?`), code)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", code, mapError(err))
	}
	return &order, nil
}

// CreateChallenge stores the challenge with its questions in slice order.
func (s *Store) CreateChallenge(ctx context.Context, challenge *models.Challenge) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		id, err := insertReturningID(ctx, tx,
			s.db.Rebind(`INSERT INTO challenges (order_id) VALUES (?) RETURNING id`), challenge.OrderID)
		if err != nil {
			return fmt.Errorf("create challenge: %w", err)
		}
		for pos, questionID := range challenge.QuestionIDs {
			_, err := tx.ExecContext(ctx,
				s.db.Rebind(`INSERT INTO challenge_questions (challenge_id, question_id, position) VALUES (?, ?, ?)`),
				id, questionID, pos)
			if err != nil {
				return fmt.Errorf("add question %d to challenge: %w", questionID, mapError(err))
			}
		}
		challenge.ID = id
		return nil
	})
}

func (s *Store) GetChallengeByOrderCode(ctx context.Context, code int) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.GetContext(ctx, &challenge, s.db.Rebind(`
		SELECT c.id, c.order_id, o.code AS order_code
		FROM challenges c JOIN orders o ON o.id = c.order_id
		WHERE o.code = ?`), code)
	if err != nil {
		return nil, fmt.Errorf("get challenge for order %d: %w", code, mapError(err))
	}

	challenge.QuestionIDs = []int64{}
	err = s.db.SelectContext(ctx, &challenge.QuestionIDs, s.db.Rebind(`
		SELECT question_id FROM challenge_questions
		WHERE challenge_id = ? ORDER BY position`), challenge.ID)
	if err != nil {
		return nil, fmt.Errorf("list challenge questions: %w", err)
	}
	return &challenge, nil
}
