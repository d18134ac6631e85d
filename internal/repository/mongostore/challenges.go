package mongostore

import (
	"context"
	"fmt"

	"academy-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (s *Store) CreateQuestion(ctx context.Context, question *models.Question) error {
	id, err := s.nextID(ctx, colQuestions)
	if err != nil {
		return err
	}
	question.ID = id
	if _, err := s.db.Collection(colQuestions).InsertOne(ctx, question); err != nil {
		return fmt.Errorf("create question: %w", mapError(err))
	}
	return nil
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	var question models.Question
	if err := s.db.Collection(colQuestions).FindOne(ctx, bson.M{"_id": id}).Decode(&question); err != nil {
		return nil, fmt.Errorf("get question %d: %w", id, mapError(err))
	}
	return &question, nil
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	id, err := s.nextID(ctx, colOrders)
	if err != nil {
		return err
	}
	order.ID = id
	if _, err := s.db.Collection(colOrders).InsertOne(ctx, order); err != nil {
		return fmt.Errorf("create order: %w", mapError(err))
	}
	return nil
}

func (s *Store) GetOrderByCode(ctx context.Context, code int) (*models.Order, error) {
	var order models.Order
	if err := s.db.Collection(colOrders).FindOne(ctx, bson.M{"code": code}).Decode(&order); err != nil {
		return nil, fmt.Errorf("get order %d: %w", code, mapError(err))
	}
	return &order, nil
}

// CreateChallenge stores the question ids as an ordered array.
func (s *Store) CreateChallenge(ctx context.Context, challenge *models.Challenge) error {
	var order models.Order
	if err := s.db.Collection(colOrders).FindOne(ctx, bson.M{"_id": challenge.OrderID}).Decode(&order); err != nil {
		return fmt.Errorf("create challenge: order %d: %w", challenge.OrderID, mapError(err))
	}
	for _, qid := range challenge.QuestionIDs {
		if _, err := s.GetQuestion(ctx, qid); err != nil {
			return fmt.Errorf("create challenge: %w", err)
		}
	}

	id, err := s.nextID(ctx, colChallenges)
	if err != nil {
		return err
	}
	doc := *challenge
	doc.ID = id
	doc.OrderCode = order.Code
	if doc.QuestionIDs == nil {
		doc.QuestionIDs = []int64{}
	}
	if _, err := s.db.Collection(colChallenges).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("create challenge: %w", mapError(err))
	}
	*challenge = doc
	return nil
}

func (s *Store) GetChallengeByOrderCode(ctx context.Context, code int) (*models.Challenge, error) {
	order, err := s.GetOrderByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get challenge for order %d: %w", code, err)
	}
	var challenge models.Challenge
	if err := s.db.Collection(colChallenges).FindOne(ctx, bson.M{"order_id": order.ID}).Decode(&challenge); err != nil {
		return nil, fmt.Errorf("get challenge for order %d: %w", code, mapError(err))
	}
	challenge.OrderCode = order.Code
	return &challenge, nil
}
