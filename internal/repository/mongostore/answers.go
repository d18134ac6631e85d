package mongostore

import (
	"context"
	"fmt"

	"academy-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) CreateAnswers(ctx context.Context, answers []models.Answer) error {
	ids := make([]int64, len(answers))
	for i := range answers {
		id, err := s.nextID(ctx, colAnswers)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	err := s.inTransaction(ctx, func(ctx context.Context) error {
		col := s.db.Collection(colAnswers)
		for i, a := range answers {
			a.ID = ids[i]
			if _, err := col.InsertOne(ctx, a); err != nil {
				return fmt.Errorf("create answer for question %d: %w", a.QuestionID, mapError(err))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for i := range answers {
		answers[i].ID = ids[i]
	}
	return nil
}

func (s *Store) ListAnswersByCandidate(ctx context.Context, candidateID int64) ([]models.Answer, error) {
	answers, err := findAll[models.Answer](ctx, s.db.Collection(colAnswers),
		bson.M{"candidate_id": candidateID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	if len(answers) == 0 {
		return answers, nil
	}

	questionIDs := make([]int64, 0, len(answers))
	for _, a := range answers {
		questionIDs = append(questionIDs, a.QuestionID)
	}
	questions, err := findAll[models.Question](ctx, s.db.Collection(colQuestions),
		bson.M{"_id": bson.M{"$in": questionIDs}})
	if err != nil {
		return nil, fmt.Errorf("list answered questions: %w", err)
	}
	texts := make(map[int64]string, len(questions))
	for _, q := range questions {
		texts[q.ID] = q.Text
	}
	for i := range answers {
		answers[i].QuestionText = texts[answers[i].QuestionID]
	}
	return answers, nil
}
