package sqlstore

import (
	"context"
	"fmt"

	"academy-service/internal/models"
)

func (s *Store) CreatePlanet(ctx context.Context, planet *models.Planet) error {
	id, err := insertReturningID(ctx, s.db,
		s.db.Rebind(`INSERT INTO planets (name) VALUES (?) RETURNING id`), planet.Name)
	if err != nil {
		return fmt.Errorf("create planet: %w", err)
	}
	planet.ID = id
	return nil
}

func (s *Store) GetPlanet(ctx context.Context, id int64) (*models.Planet, error) {
	var planet models.Planet
	err := s.db.GetContext(ctx, &planet, s.db.Rebind(`SELECT id, name FROM planets WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("get planet %d: %w", id, mapError(err))
	}
	return &planet, nil
}

func (s *Store) ListPlanets(ctx context.Context) ([]models.Planet, error) {
	planets := []models.Planet{}
	if err := s.db.SelectContext(ctx, &planets, `SELECT id, name FROM planets ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list planets: %w", err)
	}
	return planets, nil
}
