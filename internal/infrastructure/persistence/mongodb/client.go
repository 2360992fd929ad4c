package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection    = "users"
	projectsCollection = "projects"
	todosCollection    = "todos"

	usernameIndex    = "username_ci"
	emailIndex       = "email_ci"
	projectNameIndex = "user_project_name_ci"
)

// caseInsensitive ignores case and diacritics. Queries that must hit the
// unique indexes have to use the same collation.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 1}

// Store wraps the client and database shared by the repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the client and verifies the server is reachable.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes that back the duplicate checks,
// plus the lookup indexes used by todo listings and delete guards.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName(usernameIndex).SetUnique(true).SetCollation(caseInsensitive),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(emailIndex).SetUnique(true).SetCollation(caseInsensitive),
		},
	}); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if _, err := s.db.Collection(projectsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "projectName", Value: 1}},
		Options: options.Index().SetName(projectNameIndex).SetUnique(true).SetCollation(caseInsensitive),
	}); err != nil {
		return fmt.Errorf("projects indexes: %w", err)
	}
	if _, err := s.db.Collection(todosCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "projectId", Value: 1}, {Key: "completed", Value: 1}}},
		{Keys: bson.D{{Key: "projectId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("todos indexes: %w", err)
	}
	return nil
}
