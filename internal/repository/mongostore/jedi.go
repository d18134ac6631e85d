package mongostore

import (
	"context"
	"fmt"

	"academy-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) CreateJedi(ctx context.Context, jedi *models.Jedi) error {
	if _, err := s.GetPlanet(ctx, jedi.PlanetID); err != nil {
		return fmt.Errorf("create jedi: %w", err)
	}
	id, err := s.nextID(ctx, colJedi)
	if err != nil {
		return err
	}
	jedi.ID = id
	jedi.PadawanCount = 0
	if _, err := s.db.Collection(colJedi).InsertOne(ctx, jedi); err != nil {
		return fmt.Errorf("create jedi: %w", mapError(err))
	}
	return nil
}

func (s *Store) GetJedi(ctx context.Context, id int64) (*models.Jedi, error) {
	var jedi models.Jedi
	if err := s.db.Collection(colJedi).FindOne(ctx, bson.M{"_id": id}).Decode(&jedi); err != nil {
		return nil, fmt.Errorf("get jedi %d: %w", id, mapError(err))
	}
	return &jedi, nil
}

func (s *Store) ListJedi(ctx context.Context) ([]models.Jedi, error) {
	jedi, err := findAll[models.Jedi](ctx, s.db.Collection(colJedi), bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list jedi: %w", err)
	}
	return jedi, nil
}

// summaryPipeline annotates every Jedi with its planet name and the number
// of candidates pointing at it.
func summaryPipeline(minPadawans int) []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         colCandidates,
			"localField":   "_id",
			"foreignField": "jedi_id",
			"as":           "padawans",
		}},
		{"$lookup": bson.M{
			"from":         colPlanets,
			"localField":   "planet_id",
			"foreignField": "_id",
			"as":           "planet",
		}},
		{"$unwind": "$planet"},
		{"$project": bson.M{
			"_id":            1,
			"name":           1,
			"planet_id":      1,
			"planet_name":    "$planet.name",
			"padawans_count": bson.M{"$size": "$padawans"},
		}},
		{"$match": bson.M{"padawans_count": bson.M{"$gte": minPadawans}}},
	}
}

func (s *Store) CountJediSummaries(ctx context.Context, minPadawans int) (int, error) {
	pipeline := append(summaryPipeline(minPadawans), bson.M{"$count": "total"})
	cur, err := s.db.Collection(colJedi).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("count jedi summaries: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		Total int `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode jedi count: %w", err)
		}
	}
	return result.Total, cur.Err()
}

func (s *Store) ListJediSummaries(ctx context.Context, minPadawans, offset, limit int) ([]models.JediSummary, error) {
	pipeline := append(summaryPipeline(minPadawans),
		bson.M{"$sort": bson.M{"_id": 1}},
		bson.M{"$skip": offset},
		bson.M{"$limit": limit},
	)
	cur, err := s.db.Collection(colJedi).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list jedi summaries: %w", err)
	}
	defer cur.Close(ctx)

	summaries := []models.JediSummary{}
	if err := cur.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("decode jedi summaries: %w", err)
	}
	return summaries, nil
}
