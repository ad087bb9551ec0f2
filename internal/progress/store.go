package progress

import (
	"context"
	"fmt"

	"github.com/Ishwari-N/leetcode-backend/internal/database"
	"github.com/Ishwari-N/leetcode-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a user has no aggregate yet. The service
// treats this as the defined initial state, not a failure.
var ErrNotFound = mongo.ErrNoDocuments

type Store struct {
	coll *mongo.Collection
}

func NewStore(db *database.Mongo) *Store {
	return &Store{coll: db.Collection(database.ProgressCollection)}
}

func (s *Store) Get(ctx context.Context, userID string) (*models.Progress, error) {
	var p models.Progress
	if err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save upserts the whole aggregate document. The set and the derived count
// always travel together in one write, so a reader never observes one
// without the other.
func (s *Store) Save(ctx context.Context, p *models.Progress) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.UserID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
