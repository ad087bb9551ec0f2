package importer

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"

	"github.com/Ishwari-N/leetcode-backend/internal/models"
	"github.com/sirupsen/logrus"
)

func TestDeriveID(t *testing.T) {
	tests := []struct {
		name  string
		link  string
		title string
		want  string
	}{
		{"url with problem slug", "https://leetcode.com/problems/two-sum/", "", "two-sum"},
		{"slug is lower-cased", "https://leetcode.com/problems/Two-Sum", "", "two-sum"},
		{"query string ignored", "https://leetcode.com/problems/two-sum?tab=description", "", "two-sum"},
		{"relative link", "/problems/valid-parentheses/", "", "valid-parentheses"},
		{"no marker falls back to title", "https://example.com/q/123", "Two Sum", "two-sum"},
		{"title only", "", "Merge Intervals", "merge-intervals"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveID(tt.link, tt.title); got != tt.want {
				t.Errorf("DeriveID(%q, %q) = %q, want %q", tt.link, tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"3Sum Closest!", "3sum-closest"},
		{"Two Sum", "two-sum"},
		{"  Median of Two Sorted Arrays  ", "median-of-two-sorted-arrays"},
		{"LRU Cache (Design)", "lru-cache-design"},
		{"A--B__C", "a-b-c"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}

	// Any non-empty slug contains only lower-case alphanumerics and separators.
	valid := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	if got := Slugify("3Sum Closest!"); !valid.MatchString(got) {
		t.Errorf("Slugify produced invalid slug %q", got)
	}
}

func TestMergerUnion(t *testing.T) {
	m := NewMerger()
	m.Add("amazon", RawRecord{Title: "Two Sum", Link: "/problems/two-sum/", Topics: TopicList{"Array"}})
	m.Add("google", RawRecord{Title: "Two Sum", Link: "/problems/two-sum/", Topics: TopicList{"Array", "DP"}})

	qs := m.Questions()
	if len(qs) != 1 {
		t.Fatalf("merged %d questions, want 1", len(qs))
	}
	q := qs[0]
	if !reflect.DeepEqual(q.Companies, []string{"amazon", "google"}) {
		t.Errorf("companies = %v, want [amazon google]", q.Companies)
	}
	if !reflect.DeepEqual(q.Topics, []string{"Array", "DP"}) {
		t.Errorf("topics = %v, want [Array DP]", q.Topics)
	}
}

func TestMergerFirstWriterWins(t *testing.T) {
	m := NewMerger()
	m.Add("a", RawRecord{Title: "Two Sum", Link: "/problems/two-sum/", Difficulty: "Medium"})
	m.Add("b", RawRecord{Title: "Two Sum Renamed", Link: "/problems/two-sum/", Difficulty: "Hard"})

	q := m.Questions()[0]
	if q.Difficulty != models.DifficultyMedium {
		t.Errorf("difficulty = %q, want Medium (first writer wins)", q.Difficulty)
	}
	if q.Title != "Two Sum" {
		t.Errorf("title = %q, want first-seen title", q.Title)
	}
}

func TestMergerIdempotentAdds(t *testing.T) {
	m := NewMerger()
	rec := RawRecord{Title: "Two Sum", Link: "/problems/two-sum/", Topics: TopicList{"Array"}}
	m.Add("amazon", rec)
	m.Add("amazon", rec)

	q := m.Questions()[0]
	if !reflect.DeepEqual(q.Companies, []string{"amazon"}) {
		t.Errorf("companies = %v, want single [amazon]", q.Companies)
	}
	if !reflect.DeepEqual(q.Topics, []string{"Array"}) {
		t.Errorf("topics = %v, want single [Array]", q.Topics)
	}
}

func TestMergerSkipsUnderivable(t *testing.T) {
	m := NewMerger()
	if m.Add("a", RawRecord{Difficulty: "Easy"}) {
		t.Error("record with no title and no link should be skipped")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestMergerDefaultsDifficulty(t *testing.T) {
	m := NewMerger()
	m.Add("a", RawRecord{Title: "X", Link: "/problems/x/"})
	if got := m.Questions()[0].Difficulty; got != models.DifficultyMedium {
		t.Errorf("difficulty = %q, want Medium default", got)
	}
}

func TestMergerRelativeLink(t *testing.T) {
	m := NewMerger()
	m.Add("a", RawRecord{Title: "X", Link: "/problems/x/"})
	if got := m.Questions()[0].LeetcodeURL; got != BaseProblemURL+"/problems/x/" {
		t.Errorf("url = %q, want absolutized link", got)
	}
}

func TestTopicListUnmarshal(t *testing.T) {
	var rec RawRecord
	if err := json.Unmarshal([]byte(`{"title":"X","link":"/problems/x/","topics":"Array"}`), &rec); err != nil {
		t.Fatalf("unmarshal string topics: %v", err)
	}
	if !reflect.DeepEqual([]string(rec.Topics), []string{"Array"}) {
		t.Errorf("topics = %v, want [Array]", rec.Topics)
	}

	if err := json.Unmarshal([]byte(`{"title":"X","link":"/problems/x/","topics":["Array","DP"]}`), &rec); err != nil {
		t.Fatalf("unmarshal array topics: %v", err)
	}
	if !reflect.DeepEqual([]string(rec.Topics), []string{"Array", "DP"}) {
		t.Errorf("topics = %v, want [Array DP]", rec.Topics)
	}
}

// ── Run ─────────────────────────────────────────────────

// fakeStore emulates the record store's upsert semantics: scalars stick on
// first insert, companies/topics are unioned on every write.
type fakeStore struct {
	byID map[string]models.Question
	err  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[string]models.Question)}
}

func (f *fakeStore) BulkUpsert(_ context.Context, questions []models.Question) (int64, int64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	var inserted, updated int64
	for _, q := range questions {
		existing, ok := f.byID[q.ID]
		if !ok {
			f.byID[q.ID] = q
			inserted++
			continue
		}
		for _, c := range q.Companies {
			existing.Companies = union(existing.Companies, c)
		}
		for _, topic := range q.Topics {
			existing.Topics = union(existing.Topics, topic)
		}
		f.byID[q.ID] = existing
		updated++
	}
	return inserted, updated, nil
}

func union(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}

func writeBatch(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunMergesAcrossBatches(t *testing.T) {
	dir := t.TempDir()
	writeBatch(t, dir, "amazon.json",
		`[{"title":"Two Sum","link":"/problems/two-sum/","difficulty":"Easy","topics":["Array"]},
		  {"title":"3Sum Closest!","difficulty":"Medium"}]`)
	writeBatch(t, dir, "google.json",
		`[{"title":"Two Sum","link":"/problems/two-sum/","difficulty":"Hard","topics":["Array","DP"]},
		  {"difficulty":"Easy"}]`)

	store := newFakeStore()
	summary, err := New(store, testLogger()).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Processed != 4 {
		t.Errorf("Processed = %d, want 4", summary.Processed)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if summary.Unique != 2 {
		t.Errorf("Unique = %d, want 2", summary.Unique)
	}
	if len(summary.BatchErrors) != 0 {
		t.Errorf("BatchErrors = %v, want none", summary.BatchErrors)
	}

	q := store.byID["two-sum"]
	if !reflect.DeepEqual(q.Companies, []string{"amazon", "google"}) {
		t.Errorf("companies = %v, want [amazon google]", q.Companies)
	}
	if !reflect.DeepEqual(q.Topics, []string{"Array", "DP"}) {
		t.Errorf("topics = %v, want [Array DP]", q.Topics)
	}
	if q.Difficulty != models.DifficultyEasy {
		t.Errorf("difficulty = %q, want Easy (first writer wins)", q.Difficulty)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeBatch(t, dir, "amazon.json",
		`[{"title":"Two Sum","link":"/problems/two-sum/","difficulty":"Easy","topics":["Array"]},
		  {"title":"3Sum Closest!","difficulty":"Medium"}]`)

	store := newFakeStore()
	imp := New(store, testLogger())

	if _, err := imp.Run(context.Background(), dir); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := make(map[string]models.Question, len(store.byID))
	for id, q := range store.byID {
		first[id] = q
	}

	if _, err := imp.Run(context.Background(), dir); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(store.byID, first) {
		t.Errorf("second run changed state:\n got %v\nwant %v", store.byID, first)
	}
}

func TestRunSkipsMalformedBatch(t *testing.T) {
	dir := t.TempDir()
	writeBatch(t, dir, "good.json", `[{"title":"Two Sum","link":"/problems/two-sum/"}]`)
	writeBatch(t, dir, "broken.json", `{"not":"an array"`)

	store := newFakeStore()
	summary, err := New(store, testLogger()).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Unique != 1 {
		t.Errorf("Unique = %d, want 1", summary.Unique)
	}
	if _, ok := summary.BatchErrors["broken"]; !ok {
		t.Errorf("BatchErrors = %v, want entry for broken", summary.BatchErrors)
	}
	if _, ok := store.byID["two-sum"]; !ok {
		t.Error("good batch should still be imported")
	}
}

func TestRunFatalOnEmptyDirectory(t *testing.T) {
	store := newFakeStore()
	_, err := New(store, testLogger()).Run(context.Background(), t.TempDir())
	if err != ErrNoBatches {
		t.Errorf("Run on empty dir = %v, want ErrNoBatches", err)
	}
}
