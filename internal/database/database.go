package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Ishwari-N/leetcode-backend/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection     = "users"
	QuestionsCollection = "questions"
	ProgressCollection  = "progress"

	connectTimeout = 10 * time.Second
	pingTimeout    = 2 * time.Second
)

// Mongo wraps the driver client and owns the store's readiness state.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the database and verifies the connection before returning.
func Connect(ctx context.Context, cfg config.Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Mongo{client: client, db: client.Database(cfg.MongoDB)}, nil
}

func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Ready probes the store with a short timeout. Consumed by the health
// endpoint only; request handlers surface store errors per call instead.
func (m *Mongo) Ready(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary()) == nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the stores rely on. Safe to run on every
// startup; existing indexes are left alone.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := m.db.Collection(UsersCollection).Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	questions := []mongo.IndexModel{
		{Keys: bson.D{{Key: "difficulty", Value: 1}}},
		{Keys: bson.D{{Key: "companies", Value: 1}}},
		{Keys: bson.D{{Key: "solved", Value: 1}}},
		{Keys: bson.D{{Key: "difficulty", Value: 1}, {Key: "companies", Value: 1}}},
		{Keys: bson.D{{Key: "topics", Value: 1}, {Key: "companies", Value: 1}}},
	}
	if _, err := m.db.Collection(QuestionsCollection).Indexes().CreateMany(ctx, questions); err != nil {
		return fmt.Errorf("create question indexes: %w", err)
	}

	return nil
}
