package sqlstore

import (
	"context"
	"fmt"

	"academy-service/internal/models"
)

func (s *Store) CreateJedi(ctx context.Context, jedi *models.Jedi) error {
	id, err := insertReturningID(ctx, s.db,
		s.db.Rebind(`INSERT INTO jedi (name, planet_id, padawan_count) VALUES (?, ?, 0) RETURNING id`),
		jedi.Name, jedi.PlanetID)
	if err != nil {
		return fmt.Errorf("create jedi: %w", err)
	}
	jedi.ID = id
	jedi.PadawanCount = 0
	return nil
}

func (s *Store) GetJedi(ctx context.Context, id int64) (*models.Jedi, error) {
	var jedi models.Jedi
	err := s.db.GetContext(ctx, &jedi,
		s.db.Rebind(`SELECT id, name, planet_id, padawan_count FROM jedi WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("get jedi %d: %w", id, mapError(err))
	}
	return &jedi, nil
}

func (s *Store) ListJedi(ctx context.Context) ([]models.Jedi, error) {
	jedi := []models.Jedi{}
	if err := s.db.SelectContext(ctx, &jedi, `SELECT id, name, planet_id, padawan_count FROM jedi ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list jedi: %w", err)
	}
	return jedi, nil
}

const jediSummaryGroup = `
	FROM jedi j
	JOIN planets p ON p.id = j.planet_id
	LEFT JOIN candidates c ON c.jedi_id = j.id
	GROUP BY j.id, j.name, j.planet_id, p.name
	HAVING COUNT(c.id) >= ?`

func (s *Store) CountJediSummaries(ctx context.Context, minPadawans int) (int, error) {
	var total int
	query := `SELECT COUNT(*) FROM (SELECT j.id` + jediSummaryGroup + `) summaries`
	if err := s.db.GetContext(ctx, &total, s.db.Rebind(query), minPadawans); err != nil {
		return 0, fmt.Errorf("count jedi summaries: %w", err)
	}
	return total, nil
}

func (s *Store) ListJediSummaries(ctx context.Context, minPadawans, offset, limit int) ([]models.JediSummary, error) {
	summaries := []models.JediSummary{}
	query := `SELECT j.id, j.name, j.planet_id, p.name AS planet_name, COUNT(c.id) AS padawans_count` +
		jediSummaryGroup + ` ORDER BY j.id LIMIT ? OFFSET ?`
	if err := s.db.SelectContext(ctx, &summaries, s.db.Rebind(query), minPadawans, limit, offset); err != nil {
		return nil, fmt.Errorf("list jedi summaries: %w", err)
	}
	return summaries, nil
}
