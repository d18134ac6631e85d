package mongostore

import (
	"context"
	"fmt"

	"academy-service/internal/models"
	"academy-service/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (s *Store) CreateCandidate(ctx context.Context, candidate *models.Candidate, limit int) error {
	if !models.ValidAge(candidate.Age) {
		return fmt.Errorf("create candidate: age %d: %w", candidate.Age, repository.ErrInvalid)
	}

	id, err := s.nextID(ctx, colCandidates)
	if err != nil {
		return err
	}

	doc := *candidate
	doc.ID = id
	doc.JediID = nil

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetPlanet(ctx, candidate.PlanetID); err != nil {
			return err
		}

		jedi := s.db.Collection(colJedi)
		onPlanet, err := jedi.CountDocuments(ctx, bson.M{"planet_id": candidate.PlanetID})
		if err != nil {
			return err
		}
		if onPlanet > 0 {
			free, err := jedi.CountDocuments(ctx, bson.M{
				"planet_id":     candidate.PlanetID,
				"padawan_count": bson.M{"$lt": limit},
			})
			if err != nil {
				return err
			}
			if free == 0 {
				return repository.ErrCapacity
			}
		}

		_, err = s.db.Collection(colCandidates).InsertOne(ctx, doc)
		return mapError(err)
	})
	if err != nil {
		return fmt.Errorf("create candidate: %w", err)
	}

	*candidate = doc
	return nil
}

func (s *Store) GetCandidate(ctx context.Context, id int64) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := s.db.Collection(colCandidates).FindOne(ctx, bson.M{"_id": id}).Decode(&candidate); err != nil {
		return nil, fmt.Errorf("get candidate %d: %w", id, mapError(err))
	}
	return &candidate, nil
}

func eligibleFilter(planetID int64) bson.M {
	return bson.M{"planet_id": planetID, "jedi_id": nil}
}

func (s *Store) CountEligibleCandidates(ctx context.Context, planetID int64) (int, error) {
	total, err := s.db.Collection(colCandidates).CountDocuments(ctx, eligibleFilter(planetID))
	if err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return int(total), nil
}

func (s *Store) ListEligibleCandidates(ctx context.Context, planetID int64, offset, limit int) ([]models.Candidate, error) {
	candidates, err := findAll[models.Candidate](ctx, s.db.Collection(colCandidates),
		eligibleFilter(planetID), pageOptions(offset, limit))
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

func (s *Store) AssignMentor(ctx context.Context, candidateID, jediID int64, limit int, notify func(context.Context) error) error {
	notified := false
	canRetry := func() bool { return !notified }

	return s.retryTransaction(ctx, canRetry, func(ctx context.Context) error {
		res, err := s.db.Collection(colJedi).UpdateOne(ctx,
			bson.M{"_id": jediID, "padawan_count": bson.M{"$lt": limit}},
			bson.M{"$inc": bson.M{"padawan_count": 1}},
		)
		if err != nil {
			return fmt.Errorf("reserve padawan slot: %w", err)
		}
		if res.MatchedCount == 0 {
			if _, err := s.GetJedi(ctx, jediID); err != nil {
				return fmt.Errorf("reserve padawan slot: %w", err)
			}
			return fmt.Errorf("reserve padawan slot: %w", repository.ErrCapacity)
		}

		res, err = s.db.Collection(colCandidates).UpdateOne(ctx,
			bson.M{"_id": candidateID, "jedi_id": nil},
			bson.M{"$set": bson.M{"jedi_id": jediID}},
		)
		if err != nil {
			return fmt.Errorf("assign candidate: %w", err)
		}
		if res.MatchedCount == 0 {
			if _, err := s.GetCandidate(ctx, candidateID); err != nil {
				return fmt.Errorf("assign candidate: %w", err)
			}
			return fmt.Errorf("assign candidate: %w", repository.ErrAlreadyAssigned)
		}

		if notify == nil {
			return nil
		}
		notified = true
		return notify(ctx)
	})
}
