package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Ishwari-N/leetcode-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// BaseProblemURL absolutizes site-relative problem links.
const BaseProblemURL = "https://leetcode.com"

// ErrNoBatches is returned when the data directory contains no batch files.
// Unlike a malformed batch, an empty run is fatal.
var ErrNoBatches = errors.New("no batch files found")

var problemPathPattern = regexp.MustCompile(`/problems/([^/?#]+)`)

// RawRecord is one untrusted question entry from a source batch.
type RawRecord struct {
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	Difficulty string    `json:"difficulty"`
	Topics     TopicList `json:"topics"`
}

// TopicList tolerates sources that encode topics as either a single string
// or an array of strings.
type TopicList []string

func (t *TopicList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*t = TopicList{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*t = TopicList(many)
	return nil
}

// DeriveID computes the canonical question id: the lower-cased path segment
// after /problems/, else a slug of the title. Returns "" when the record has
// neither, which callers treat as a skip rather than an error.
func DeriveID(link, title string) string {
	if link != "" {
		if m := problemPathPattern.FindStringSubmatch(link); m != nil {
			return strings.ToLower(m[1])
		}
	}
	return Slugify(title)
}

// Slugify lower-cases the title and collapses every run of characters
// outside [a-z0-9] into a single separator.
func Slugify(title string) string {
	var b strings.Builder
	lastSep := true // suppress a leading separator
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSep = false
		} else if !lastSep {
			b.WriteByte('-')
			lastSep = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Merger accumulates canonical questions keyed by derived id.
//
// The merge policy is deliberate, not a bug: the first source to mention a
// question wins title, difficulty, and URL; later sources only grow the
// companies and topics sets. Conflicting difficulty labels across sources
// are resolved silently in favor of the first one seen.
type Merger struct {
	order []string
	byID  map[string]*models.Question
}

func NewMerger() *Merger {
	return &Merger{byID: make(map[string]*models.Question)}
}

// Add merges one record attributed to source. It reports false when the
// record fails identifier derivation and was skipped.
func (m *Merger) Add(source string, rec RawRecord) bool {
	link := strings.TrimSpace(rec.Link)
	if link != "" && !strings.HasPrefix(link, "http") {
		link = BaseProblemURL + link
	}

	id := DeriveID(link, strings.TrimSpace(rec.Title))
	if id == "" {
		return false
	}

	if q, ok := m.byID[id]; ok {
		appendMissing(&q.Companies, source)
		for _, topic := range rec.Topics {
			if topic = strings.TrimSpace(topic); topic != "" {
				appendMissing(&q.Topics, topic)
			}
		}
		return true
	}

	q := &models.Question{
		ID:          id,
		Title:       strings.TrimSpace(rec.Title),
		Difficulty:  normalizeDifficulty(rec.Difficulty),
		Topics:      []string{},
		Companies:   []string{source},
		LeetcodeURL: link,
	}
	for _, topic := range rec.Topics {
		if topic = strings.TrimSpace(topic); topic != "" {
			appendMissing(&q.Topics, topic)
		}
	}
	m.byID[id] = q
	m.order = append(m.order, id)
	return true
}

// Questions returns the merged set in first-seen order.
func (m *Merger) Questions() []models.Question {
	out := make([]models.Question, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.byID[id])
	}
	return out
}

func (m *Merger) Len() int {
	return len(m.byID)
}

func appendMissing(set *[]string, v string) {
	for _, existing := range *set {
		if existing == v {
			return
		}
	}
	*set = append(*set, v)
}

func normalizeDifficulty(d string) models.Difficulty {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "easy":
		return models.DifficultyEasy
	case "hard":
		return models.DifficultyHard
	default:
		// Unknown labels fall back to Medium, same as a missing one.
		return models.DifficultyMedium
	}
}

// ── Batch Run ───────────────────────────────────────────

// Store is the persistence surface the importer needs. Upserts must set
// scalar fields only on insert and union companies/topics on match, which is
// what makes re-running the importer idempotent.
type Store interface {
	BulkUpsert(ctx context.Context, questions []models.Question) (inserted, updated int64, err error)
}

// Summary is the end-of-run tally.
type Summary struct {
	Batches     int
	Processed   int
	Skipped     int
	Unique      int
	Inserted    int64
	Updated     int64
	BatchErrors map[string]error
}

type Importer struct {
	store Store
	log   *logrus.Logger
}

func New(store Store, log *logrus.Logger) *Importer {
	return &Importer{store: store, log: log}
}

// Run reads every *.json batch in dir (file base name = source company),
// merges the records, and applies the result as idempotent upserts. A
// malformed batch or an underivable record is recorded and skipped; only a
// missing directory, an empty one, or a failed persist aborts the run.
func (imp *Importer) Run(ctx context.Context, dir string) (*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, ErrNoBatches
	}

	summary := &Summary{BatchErrors: make(map[string]error)}
	merger := NewMerger()

	for _, name := range files {
		company := strings.TrimSuffix(name, ".json")

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			summary.BatchErrors[company] = err
			imp.log.WithFields(logrus.Fields{"company": company, "error": err}).Warn("skipping unreadable batch")
			continue
		}

		var records []RawRecord
		if err := json.Unmarshal(data, &records); err != nil {
			summary.BatchErrors[company] = err
			imp.log.WithFields(logrus.Fields{"company": company, "error": err}).Warn("skipping malformed batch")
			continue
		}

		summary.Batches++
		for _, rec := range records {
			summary.Processed++
			if !merger.Add(company, rec) {
				summary.Skipped++
				imp.log.WithField("company", company).Debug("skipped record lacking title and link")
			}
		}
	}

	summary.Unique = merger.Len()
	if summary.Unique > 0 {
		inserted, updated, err := imp.store.BulkUpsert(ctx, merger.Questions())
		if err != nil {
			return nil, fmt.Errorf("persist questions: %w", err)
		}
		summary.Inserted = inserted
		summary.Updated = updated
	}

	imp.log.WithFields(logrus.Fields{
		"batches":      summary.Batches,
		"processed":    summary.Processed,
		"skipped":      summary.Skipped,
		"unique":       summary.Unique,
		"inserted":     summary.Inserted,
		"updated":      summary.Updated,
		"batch_errors": len(summary.BatchErrors),
	}).Info("import complete")

	return summary, nil
}
