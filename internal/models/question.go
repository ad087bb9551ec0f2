package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// ── Core Structs ───────────────────────────────────────

// Question is a canonical interview problem. ID is the deduplication key
// derived from the problem URL (or title slug) and doubles as the Mongo _id,
// so two sources referencing the same problem always collapse into one
// document.
type Question struct {
	ID          string     `bson:"_id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Difficulty  Difficulty `bson:"difficulty" json:"difficulty"`
	Topics      []string   `bson:"topics" json:"topics"`
	Companies   []string   `bson:"companies" json:"companies"`
	LeetcodeURL string     `bson:"leetcodeUrl" json:"leetcodeUrl"`
	Solved      bool       `bson:"solved" json:"solved"`
	Order       int        `bson:"order" json:"order"`
	IsCustom    bool       `bson:"isCustom" json:"isCustom"`
	AddedAt     time.Time  `bson:"addedAt" json:"addedAt"`
}

// ── Request Types ─────────────────────────────────────

type CreateQuestionRequest struct {
	Title       string   `json:"title"`
	Difficulty  string   `json:"difficulty"`
	Topics      []string `json:"topics"`
	Companies   []string `json:"companies"`
	LeetcodeURL string   `json:"leetcodeUrl"`
	Order       int      `json:"order"`
}

type UpdateQuestionRequest struct {
	Title      *string  `json:"title,omitempty"`
	Difficulty *string  `json:"difficulty,omitempty"`
	Topics     []string `json:"topics,omitempty"`
	Companies  []string `json:"companies,omitempty"`
	Order      *int     `json:"order,omitempty"`
	Solved     *bool    `json:"solved,omitempty"`
}

// QuestionFilter narrows GET /api/questions. Search matches title and
// companies case-insensitively.
type QuestionFilter struct {
	Company    string
	Difficulty string
	Search     string
}
