package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// mongoStore implements Store on a MongoDB database.
type mongoStore struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
	logger  zerolog.Logger
}

// NewMongoStore creates a Store over the named database of client.
// Every operation is bounded by timeout.
func NewMongoStore(client *mongo.Client, database string, timeout time.Duration, logger zerolog.Logger) Store {
	return &mongoStore{
		client:  client,
		db:      client.Database(database),
		timeout: timeout,
		logger:  logger.With().Str("store", "mongo").Str("database", database).Logger(),
	}
}

func (s *mongoStore) Create(ctx context.Context, collection string, doc Document) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to insert document")
		return "", fmt.Errorf("failed to insert into %s: %w", collection, classifyMongo(err))
	}

	id := identifierString(res.InsertedID)
	s.logger.Debug().Str("collection", collection).Str("id", id).Msg("document created")

	return id, nil
}

func (s *mongoStore) Query(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, mongoFilter(filter), opts)
	if err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to query documents")
		return nil, fmt.Errorf("failed to query %s: %w", collection, classifyMongo(err))
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to decode documents")
		return nil, fmt.Errorf("failed to decode %s: %w", collection, classifyMongo(err))
	}

	docs := make([]Document, len(raw))
	for i, m := range raw {
		docs[i] = Document(m)
	}

	return docs, nil
}

func (s *mongoStore) Collections(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", classifyMongo(err))
	}
	return names, nil
}

func (s *mongoStore) Name() string { return s.db.Name() }

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mongoFilter translates a Filter into a bson query document.
func mongoFilter(filter Filter) bson.M {
	query := bson.M{}
	for field, value := range filter {
		if set, ok := value.(In); ok {
			query[field] = bson.M{"$in": bson.A(set)}
			continue
		}
		query[field] = value
	}
	return query
}

// classifyMongo marks connectivity failures with ErrUnavailable.
func classifyMongo(err error) error {
	var selection topology.ServerSelectionError
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.As(err, &selection) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func identifierString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
