package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username         string             `bson:"username" json:"username"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	LeetcodeUsername string             `bson:"leetcodeUsername" json:"leetcodeUsername"`
	LastLeetcodeSync *time.Time         `bson:"lastLeetcodeSync,omitempty" json:"lastLeetcodeSync,omitempty"`
	LeetcodeStats    LeetcodeStats      `bson:"leetcodeStats" json:"leetcodeStats"`
	SolvedProblemIDs []string           `bson:"solvedProblemIds" json:"solvedProblemIds"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasSolvedProblem reports membership in the user's solved-problem id set.
func (u *User) HasSolvedProblem(problemID string) bool {
	for _, id := range u.SolvedProblemIDs {
		if id == problemID {
			return true
		}
	}
	return false
}

// LeetcodeStats is the cached snapshot from the external stats service.
type LeetcodeStats struct {
	EasySolved     int     `bson:"easySolved" json:"easySolved"`
	MediumSolved   int     `bson:"mediumSolved" json:"mediumSolved"`
	HardSolved     int     `bson:"hardSolved" json:"hardSolved"`
	TotalSolved    int     `bson:"totalSolved" json:"totalSolved"`
	AcceptanceRate float64 `bson:"acceptanceRate" json:"acceptanceRate"`
	Ranking        int     `bson:"ranking" json:"ranking"`
}

// ── Request Types ─────────────────────────────────────

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ── Response Types ────────────────────────────────────

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries field-level messages for bad input shape.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}
