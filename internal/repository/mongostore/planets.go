package mongostore

import (
	"context"
	"fmt"

	"academy-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func (s *Store) CreatePlanet(ctx context.Context, planet *models.Planet) error {
	id, err := s.nextID(ctx, colPlanets)
	if err != nil {
		return err
	}
	planet.ID = id
	if _, err := s.db.Collection(colPlanets).InsertOne(ctx, planet); err != nil {
		return fmt.Errorf("create planet: %w", mapError(err))
	}
	return nil
}

func (s *Store) GetPlanet(ctx context.Context, id int64) (*models.Planet, error) {
	var planet models.Planet
	if err := s.db.Collection(colPlanets).FindOne(ctx, bson.M{"_id": id}).Decode(&planet); err != nil {
		return nil, fmt.Errorf("get planet %d: %w", id, mapError(err))
	}
	return &planet, nil
}

func (s *Store) ListPlanets(ctx context.Context) ([]models.Planet, error) {
	planets, err := findAll[models.Planet](ctx, s.db.Collection(colPlanets), bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list planets: %w", err)
	}
	return planets, nil
}
