package progress

import (
	"context"
	"errors"
	"time"

	"github.com/Ishwari-N/leetcode-backend/internal/models"
)

// AggregateStore persists per-user progress aggregates.
type AggregateStore interface {
	Get(ctx context.Context, userID string) (*models.Progress, error)
	Save(ctx context.Context, p *models.Progress) error
}

// QuestionSource is the slice of the question store the reconciler needs.
type QuestionSource interface {
	SetSolved(ctx context.Context, id string, solved bool) (bool, error)
	ByIDs(ctx context.Context, ids []string) ([]models.Question, error)
}

// Service keeps each user's aggregate consistent with completion toggles.
type Service struct {
	aggregates AggregateStore
	questions  QuestionSource
	now        func() time.Time
}

func NewService(aggregates AggregateStore, questions QuestionSource) *Service {
	return &Service{aggregates: aggregates, questions: questions, now: time.Now}
}

// Get returns the user's aggregate, lazily creating and persisting an empty
// one on first access. A brand-new user is not an error condition.
func (s *Service) Get(ctx context.Context, userID string) (*models.Progress, error) {
	p, err := s.aggregates.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	p = s.emptyAggregate(userID)
	if err := s.aggregates.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetCompletion is the single mutation path for aggregates. After it
// returns, the question's solved flag equals completed (when the question
// exists), the set contains the id iff completed, and TotalCompleted equals
// the set size. Adding a present id or removing an absent one is a no-op.
//
// The question write and the aggregate write are two independent operations;
// a crash between them leaves a window the read path tolerates. No
// cross-document transaction is used.
func (s *Service) SetCompletion(ctx context.Context, userID, questionID string, completed bool) (*models.Progress, error) {
	p, err := s.aggregates.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		p = s.emptyAggregate(userID)
	} else if err != nil {
		return nil, err
	}

	// A missing question is tolerated: the aggregate may hold dangling
	// references, it never owns the question lifecycle.
	if _, err := s.questions.SetSolved(ctx, questionID, completed); err != nil {
		return nil, err
	}

	if completed {
		if !contains(p.CompletedQuestionIDs, questionID) {
			p.CompletedQuestionIDs = append(p.CompletedQuestionIDs, questionID)
		}
	} else {
		p.CompletedQuestionIDs = remove(p.CompletedQuestionIDs, questionID)
	}

	// Always recomputed from the set, never incremented, so the derived
	// count cannot drift.
	p.TotalCompleted = len(p.CompletedQuestionIDs)
	p.LastUpdated = s.now()

	if err := s.aggregates.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Stats buckets the user's completed questions by difficulty. Completed ids
// whose questions no longer exist contribute to the total but to no bucket.
func (s *Service) Stats(ctx context.Context, userID string) (*models.ProgressStats, error) {
	p, err := s.aggregates.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return &models.ProgressStats{}, nil
	}
	if err != nil {
		return nil, err
	}

	live, err := s.questions.ByIDs(ctx, p.CompletedQuestionIDs)
	if err != nil {
		return nil, err
	}

	stats := &models.ProgressStats{
		TotalCompleted: p.TotalCompleted,
		LastActive:     &p.LastUpdated,
	}
	for _, q := range live {
		switch q.Difficulty {
		case models.DifficultyEasy:
			stats.Easy++
		case models.DifficultyMedium:
			stats.Medium++
		case models.DifficultyHard:
			stats.Hard++
		}
	}
	return stats, nil
}

func (s *Service) emptyAggregate(userID string) *models.Progress {
	return &models.Progress{
		UserID:               userID,
		CompletedQuestionIDs: []string{},
		TotalCompleted:       0,
		LastUpdated:          s.now(),
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func remove(set []string, v string) []string {
	out := set[:0]
	for _, s := range set {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
