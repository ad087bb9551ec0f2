package models

import "time"

// Progress is the per-user aggregate of completed questions. TotalCompleted
// is derived state: it must always equal len(CompletedQuestionIDs), and every
// mutation recomputes it from the set rather than incrementing it.
type Progress struct {
	UserID               string    `bson:"_id" json:"userId"`
	CompletedQuestionIDs []string  `bson:"completedQuestionIds" json:"completedQuestionIds"`
	TotalCompleted       int       `bson:"totalCompleted" json:"totalCompleted"`
	LastUpdated          time.Time `bson:"lastUpdated" json:"lastUpdated"`
}

type UpdateProgressRequest struct {
	IsCompleted bool `json:"isCompleted"`
}

// ProgressStats buckets a user's completed questions by difficulty. A
// completed id whose question no longer exists counts toward TotalCompleted
// but lands in no bucket.
type ProgressStats struct {
	TotalCompleted int        `json:"totalCompleted"`
	Easy           int        `json:"easy"`
	Medium         int        `json:"medium"`
	Hard           int        `json:"hard"`
	LastActive     *time.Time `json:"lastActive"`
}
