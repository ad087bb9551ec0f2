package questions

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Ishwari-N/leetcode-backend/internal/database"
	"github.com/Ishwari-N/leetcode-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no question matches the id.
var ErrNotFound = mongo.ErrNoDocuments

type Store struct {
	coll *mongo.Collection
}

func NewStore(db *database.Mongo) *Store {
	return &Store{coll: db.Collection(database.QuestionsCollection)}
}

// listSort orders by the display hint, then title for a stable tiebreak.
var listSort = bson.D{{Key: "order", Value: -1}, {Key: "title", Value: 1}}

func (s *Store) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	query := bson.M{}
	if filter.Company != "" {
		query["companies"] = filter.Company
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"companies": pattern},
		}
	}

	cursor, err := s.coll.Find(ctx, query, options.Find().SetSort(listSort))
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	questions := []models.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return questions, nil
}

// Companies returns the sorted distinct set of source companies.
func (s *Store) Companies(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "companies", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct companies: %w", err)
	}
	companies := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			companies = append(companies, name)
		}
	}
	sort.Strings(companies)
	return companies, nil
}

func (s *Store) ByID(ctx context.Context, id string) (*models.Question, error) {
	var q models.Question
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Create inserts a manually authored question. The caller derives the
// canonical id beforehand; a duplicate id surfaces as a duplicate-key error.
func (s *Store) Create(ctx context.Context, q *models.Question) error {
	q.AddedAt = time.Now()
	if q.Topics == nil {
		q.Topics = []string{}
	}
	if q.Companies == nil {
		q.Companies = []string{}
	}
	if _, err := s.coll.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

// Update applies a partial update. Set fields replace scalars; topics and
// companies are unioned in rather than overwritten, keeping both sets
// append-only across edits.
func (s *Store) Update(ctx context.Context, id string, req models.UpdateQuestionRequest) (*models.Question, error) {
	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Difficulty != nil {
		set["difficulty"] = *req.Difficulty
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}
	if req.Solved != nil {
		set["solved"] = *req.Solved
	}

	addToSet := bson.M{}
	if len(req.Topics) > 0 {
		addToSet["topics"] = bson.M{"$each": req.Topics}
	}
	if len(req.Companies) > 0 {
		addToSet["companies"] = bson.M{"$each": req.Companies}
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(addToSet) > 0 {
		update["$addToSet"] = addToSet
	}
	if len(update) == 0 {
		return s.ByID(ctx, id)
	}

	var q models.Question
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&q)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// SetSolved flips the solved flag on a question. A missing question is
// reported via the bool so the progress reconciler can tolerate it.
func (s *Store) SetSolved(ctx context.Context, id string, solved bool) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"solved": solved}})
	if err != nil {
		return false, fmt.Errorf("set solved: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// ByIDs fetches the questions whose ids are in the set. Ids that resolve to
// no document are simply absent from the result.
func (s *Store) ByIDs(ctx context.Context, ids []string) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find questions by ids: %w", err)
	}
	questions := []models.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return questions, nil
}

// BulkUpsert applies the importer's merged set: scalar fields are written
// only on first insert, companies and topics are unioned on every run.
// Unordered, so one failed write does not stop the rest.
func (s *Store) BulkUpsert(ctx context.Context, questions []models.Question) (inserted, updated int64, err error) {
	ops := make([]mongo.WriteModel, 0, len(questions))
	now := time.Now()
	for _, q := range questions {
		update := bson.M{
			"$setOnInsert": bson.M{
				"title":       q.Title,
				"difficulty":  q.Difficulty,
				"leetcodeUrl": q.LeetcodeURL,
				"solved":      false,
				"isCustom":    false,
				"order":       q.Order,
				"addedAt":     now,
			},
			"$addToSet": bson.M{
				"companies": bson.M{"$each": q.Companies},
				"topics":    bson.M{"$each": q.Topics},
			},
		}
		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": q.ID}).
			SetUpdate(update).
			SetUpsert(true))
	}

	res, err := s.coll.BulkWrite(ctx, ops, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, 0, fmt.Errorf("bulk upsert questions: %w", err)
	}
	return res.UpsertedCount, res.ModifiedCount, nil
}
