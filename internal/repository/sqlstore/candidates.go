package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"academy-service/internal/models"
	"academy-service/internal/repository"

	"github.com/jmoiron/sqlx"
)

const candidateColumns = `id, name, planet_id, age, email, jedi_id`

// The insert only happens while the planet has no Jedi or at least one
// Jedi below the padawan limit, so the check and the write are one statement.
const insertCandidate = `
	INSERT INTO candidates (name, planet_id, age, email)
	SELECT CAST(? AS VARCHAR(100)), CAST(? AS BIGINT), CAST(? AS INTEGER), CAST(? AS VARCHAR(254))
	WHERE NOT EXISTS (SELECT 1 FROM jedi WHERE planet_id = ?)
	   OR EXISTS (SELECT 1 FROM jedi WHERE planet_id = ? AND padawan_count < ?)
	RETURNING id`

func (s *Store) CreateCandidate(ctx context.Context, candidate *models.Candidate, limit int) error {
	id, err := insertReturningID(ctx, s.db, s.db.Rebind(insertCandidate),
		candidate.Name, candidate.PlanetID, candidate.Age, candidate.Email,
		candidate.PlanetID, candidate.PlanetID, limit)
	if errors.Is(err, repository.ErrNotFound) && !isForeignKey(err) {
		return fmt.Errorf("create candidate: %w", repository.ErrCapacity)
	}
	if err != nil {
		return fmt.Errorf("create candidate: %w", err)
	}
	candidate.ID = id
	candidate.JediID = nil
	return nil
}

func (s *Store) GetCandidate(ctx context.Context, id int64) (*models.Candidate, error) {
	var candidate models.Candidate
	err := s.db.GetContext(ctx, &candidate,
		s.db.Rebind(`SELECT `+candidateColumns+` FROM candidates WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("get candidate %d: %w", id, mapError(err))
	}
	return &candidate, nil
}

func (s *Store) CountEligibleCandidates(ctx context.Context, planetID int64) (int, error) {
	var total int
	err := s.db.GetContext(ctx, &total,
		s.db.Rebind(`SELECT COUNT(*) FROM candidates WHERE planet_id = ? AND jedi_id IS NULL`), planetID)
	if err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return total, nil
}

func (s *Store) ListEligibleCandidates(ctx context.Context, planetID int64, offset, limit int) ([]models.Candidate, error) {
	candidates := []models.Candidate{}
	err := s.db.SelectContext(ctx, &candidates,
		s.db.Rebind(`SELECT `+candidateColumns+` FROM candidates
			WHERE planet_id = ? AND jedi_id IS NULL
			ORDER BY id LIMIT ? OFFSET ?`), planetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

func (s *Store) AssignMentor(ctx context.Context, candidateID, jediID int64, limit int, notify func(context.Context) error) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			s.db.Rebind(`UPDATE jedi SET padawan_count = padawan_count + 1 WHERE id = ? AND padawan_count < ?`),
			jediID, limit)
		if err != nil {
			return fmt.Errorf("reserve padawan slot: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			if err := exists(ctx, tx, s.db.Rebind(`SELECT 1 FROM jedi WHERE id = ?`), jediID); err != nil {
				return fmt.Errorf("reserve padawan slot: jedi %d: %w", jediID, err)
			}
			return fmt.Errorf("reserve padawan slot: %w", repository.ErrCapacity)
		}

		res, err = tx.ExecContext(ctx,
			s.db.Rebind(`UPDATE candidates SET jedi_id = ? WHERE id = ? AND jedi_id IS NULL`),
			jediID, candidateID)
		if err != nil {
			return fmt.Errorf("assign candidate: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			if err := exists(ctx, tx, s.db.Rebind(`SELECT 1 FROM candidates WHERE id = ?`), candidateID); err != nil {
				return fmt.Errorf("assign candidate %d: %w", candidateID, err)
			}
			return fmt.Errorf("assign candidate: %w", repository.ErrAlreadyAssigned)
		}

		if notify != nil {
			if err := notify(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

func exists(ctx context.Context, tx *sqlx.Tx, query string, args ...any) error {
	var one int
	return mapError(tx.GetContext(ctx, &one, query, args...))
}
