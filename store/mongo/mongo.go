// Package mongo implements the store interfaces on top of a MongoDB
// deployment using the official driver. One Store wraps one client
// connection; the driver is responsible for pooling.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/booklane/booklane/store"
)

const (
	booksCollection   = "books"
	membersCollection = "members"
	usersCollection   = "users"

	connectTimeout = 10 * time.Second
)

// Store wraps a MongoDB database and hands out typed collection stores.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// New connects to MongoDB, verifies the connection, and ensures the unique
// indexes the data model relies on (isbn, membershipId, githubId). A failed
// connection or ping is returned to the caller, which should treat it as a
// startup-fatal condition.
func New(ctx context.Context, uri, dbName string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("Connected to MongoDB", "database", dbName)
	return s, nil
}

// ensureIndexes creates the unique indexes backing the data model's
// uniqueness invariants. Creating an existing index is a no-op.
func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	for coll, field := range map[string]string{
		booksCollection:   "isbn",
		membersCollection: "membershipId",
		usersCollection:   "githubId",
	} {
		if _, err := s.db.Collection(coll).Indexes().CreateOne(ctx, unique(field)); err != nil {
			return fmt.Errorf("failed to create unique index on %s.%s: %w", coll, field, err)
		}
	}
	return nil
}

// Books returns the book collection store.
func (s *Store) Books() store.BookStore {
	return &bookStore{coll: s.db.Collection(booksCollection)}
}

// Members returns the member collection store.
func (s *Store) Members() store.MemberStore {
	return &memberStore{coll: s.db.Collection(membersCollection)}
}

// Users returns the user collection store.
func (s *Store) Users() store.UserStore {
	return &userStore{coll: s.db.Collection(usersCollection)}
}

// Disconnect closes the underlying client connection.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mapWriteError translates driver-level write failures into store errors.
func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicateKey
	}
	return err
}
