// Package mongostore implements repository.Store on MongoDB. Multi-document
// transactions are used for the capacity checks, so the deployment must be
// a replica set.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"academy-service/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	colCounters   = "counters"
	colPlanets    = "planets"
	colJedi       = "jedi"
	colCandidates = "candidates"
	colQuestions  = "questions"
	colOrders     = "orders"
	colChallenges = "challenges"
	colAnswers    = "answers"
)

// maxTransactionAttempts bounds retries of transactions aborted by a
// write conflict.
const maxTransactionAttempts = 3

type Config struct {
	URI      string
	Database string
	PoolSize uint64
	Timeout  time.Duration
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ repository.Store = (*Store)(nil)

func Open(ctx context.Context, cfg Config) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetMaxPoolSize(cfg.PoolSize).
		SetRetryWrites(true)
	if cfg.Timeout > 0 {
		opts.SetConnectTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return New(client, cfg.Database), nil
}

// New wraps an already connected client.
func New(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Migrate creates the collections' indexes, including the unique ones
// enforcing e-mail, order code and answer pair uniqueness.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		colJedi: {
			{Keys: bson.D{{Key: "planet_id", Value: 1}}},
		},
		colCandidates: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "planet_id", Value: 1}, {Key: "jedi_id", Value: 1}}},
			{Keys: bson.D{{Key: "jedi_id", Value: 1}}},
		},
		colOrders: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colChallenges: {
			{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colAnswers: {
			{
				Keys:    bson.D{{Key: "question_id", Value: 1}, {Key: "candidate_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "candidate_id", Value: 1}}},
		},
	}
	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	for _, name := range []string{colPlanets, colQuestions, colCounters} {
		if err := s.ensureCollection(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ensureCollection(ctx context.Context, name string) error {
	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	if len(names) > 0 {
		return nil
	}
	if err := s.db.CreateCollection(ctx, name); err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	return nil
}

// nextID allocates the next integer id of a collection.
func (s *Store) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.db.Collection(colCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", name, err)
	}
	return counter.Seq, nil
}

// inTransaction runs fn in a single transaction attempt. The transaction
// commits only when fn returns nil.
func (s *Store) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	sctx := mongo.NewSessionContext(ctx, sess)
	if err := sess.StartTransaction(); err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	if err := fn(sctx); err != nil {
		_ = sess.AbortTransaction(context.Background())
		return err
	}
	if err := sess.CommitTransaction(sctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// retryTransaction repeats inTransaction while it fails with a transient
// transaction error and retry reports that another attempt is safe.
func (s *Store) retryTransaction(ctx context.Context, retry func() bool, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxTransactionAttempts; attempt++ {
		err = s.inTransaction(ctx, fn)
		if err == nil || !isTransient(err) || !retry() {
			return err
		}
	}
	return err
}

func isTransient(err error) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorLabel("TransientTransactionError")
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", repository.ErrDuplicate, err)
	}
	return err
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...options.Lister[options.FindOptions]) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func pageOptions(offset, limit int) *options.FindOptionsBuilder {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
}
