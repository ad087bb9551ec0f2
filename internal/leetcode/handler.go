package leetcode

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Ishwari-N/leetcode-backend/internal/auth"
	"github.com/Ishwari-N/leetcode-backend/internal/models"
	"github.com/Ishwari-N/leetcode-backend/internal/users"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	users  *users.Store
	client *Client
	log    *logrus.Logger
}

func NewHandler(users *users.Store, client *Client, log *logrus.Logger) *Handler {
	return &Handler{users: users, client: client, log: log}
}

// Test is an unauthenticated liveness probe for the route group.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "LeetCode API routes are working!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type setUsernameRequest struct {
	LeetcodeUsername string `json:"leetcodeUsername"`
}

func (h *Handler) SetUsername(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required. Please login."})
		return
	}

	var req setUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.LeetcodeUsername = strings.TrimSpace(req.LeetcodeUsername)
	if req.LeetcodeUsername == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "LeetCode username is required"})
		return
	}

	if err := h.users.SetLeetcodeUsername(r.Context(), userID, req.LeetcodeUsername); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":          "LeetCode username updated successfully",
		"leetcodeUsername": req.LeetcodeUsername,
	})
}

func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required. Please login."})
		return
	}

	user, err := h.users.ByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}
	if user.LeetcodeUsername == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Please set your LeetCode username first"})
		return
	}

	stats, err := h.client.FetchStats(r.Context(), user.LeetcodeUsername)
	if err != nil {
		var invalid *ErrInvalidUsername
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: invalid.Message})
			return
		}
		h.log.WithFields(logrus.Fields{"user": userID, "error": err}).Warn("leetcode sync failed")
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to sync with LeetCode"})
		return
	}

	syncedAt := time.Now()
	if err := h.users.SaveLeetcodeStats(r.Context(), userID, *stats, syncedAt); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "LeetCode data synced successfully",
		"stats":    stats,
		"lastSync": syncedAt,
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required. Please login."})
		return
	}

	user, err := h.users.ByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leetcodeUsername":  user.LeetcodeUsername,
		"stats":             user.LeetcodeStats,
		"lastSync":          user.LastLeetcodeSync,
		"solvedCount":       len(user.SolvedProblemIDs),
		"hasLeetCodeLinked": user.LeetcodeUsername != "",
	})
}

func (h *Handler) CheckProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required. Please login."})
		return
	}

	problemID := mux.Vars(r)["problemId"]

	user, err := h.users.ByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"solved":    user.HasSolvedProblem(problemID),
		"problemId": problemID,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
