package questions

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Ishwari-N/leetcode-backend/internal/importer"
	"github.com/Ishwari-N/leetcode-backend/internal/models"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.QuestionFilter{
		Company:    query.Get("company"),
		Difficulty: query.Get("difficulty"),
		Search:     query.Get("search"),
	}

	questions, err := h.store.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.Companies(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list companies"})
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (h *Handler) ByCompany(w http.ResponseWriter, r *http.Request) {
	company := mux.Vars(r)["name"]
	questions, err := h.store.List(r.Context(), models.QuestionFilter{Company: company})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" && req.LeetcodeURL == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "title or leetcodeUrl is required"})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = string(models.DifficultyMedium)
	}
	if !models.ValidDifficulties[models.Difficulty(req.Difficulty)] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty must be 'Easy', 'Medium', or 'Hard'"})
		return
	}

	// Manual creates share the importer's canonical id so a later import of
	// the same problem lands on this document instead of a duplicate.
	id := importer.DeriveID(req.LeetcodeURL, req.Title)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "could not derive a question id from title or leetcodeUrl"})
		return
	}

	q := models.Question{
		ID:          id,
		Title:       req.Title,
		Difficulty:  models.Difficulty(req.Difficulty),
		Topics:      req.Topics,
		Companies:   req.Companies,
		LeetcodeURL: req.LeetcodeURL,
		Order:       req.Order,
		IsCustom:    true,
	}
	if err := h.store.Create(r.Context(), &q); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "A question with this id already exists"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create question"})
		return
	}

	writeJSON(w, http.StatusCreated, q)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Difficulty != nil && !models.ValidDifficulties[models.Difficulty(*req.Difficulty)] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty must be 'Easy', 'Medium', or 'Hard'"})
		return
	}

	q, err := h.store.Update(r.Context(), id, req)
	if err == ErrNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update question"})
		return
	}

	writeJSON(w, http.StatusOK, q)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
