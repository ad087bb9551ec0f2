package users

import (
	"context"
	"fmt"
	"time"

	"github.com/Ishwari-N/leetcode-backend/internal/database"
	"github.com/Ishwari-N/leetcode-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = mongo.ErrNoDocuments

type Store struct {
	coll *mongo.Collection
}

func NewStore(db *database.Mongo) *Store {
	return &Store{coll: db.Collection(database.UsersCollection)}
}

// Create inserts a new user. The caller hashes the password first.
// A duplicate email or username surfaces as a mongo duplicate-key error.
func (s *Store) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.SolvedProblemIDs == nil {
		user.SolvedProblemIDs = []string{}
	}

	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (s *Store) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var user models.User
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmailOrUsername reports whether any account already claims the
// email or the username.
func (s *Store) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	filter := bson.M{"$or": bson.A{bson.M{"email": email}, bson.M{"username": username}}}
	count, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

// SetLeetcodeUsername stores the external profile handle.
func (s *Store) SetLeetcodeUsername(ctx context.Context, userID, leetcodeUsername string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"leetcodeUsername": leetcodeUsername,
		"updatedAt":        time.Now(),
	}}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("set leetcode username: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveLeetcodeStats persists a freshly synced stats snapshot.
func (s *Store) SaveLeetcodeStats(ctx context.Context, userID string, stats models.LeetcodeStats, syncedAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"leetcodeStats":    stats,
		"lastLeetcodeSync": syncedAt,
		"updatedAt":        time.Now(),
	}}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("save leetcode stats: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
