package auth

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/Ishwari-N/leetcode-backend/internal/models"
	"github.com/Ishwari-N/leetcode-backend/internal/users"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type Handler struct {
	users  *users.Store
	tokens *TokenManager
}

func NewHandler(users *users.Store, tokens *TokenManager) *Handler {
	return &Handler{users: users, tokens: tokens}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if errs := validateRegister(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{Errors: errs})
		return
	}

	exists, err := h.users.ExistsByEmailOrUsername(r.Context(), req.Email, req.Username)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error during registration"})
		return
	}
	if exists {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "User with this email or username already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error during registration"})
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := h.users.Create(r.Context(), &user); err != nil {
		// The unique index can still race a concurrent register.
		if mongo.IsDuplicateKeyError(err) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "User with this email or username already exists"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error during registration"})
		return
	}

	token, err := h.tokens.Generate(user.ID.Hex())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if errs := validateLogin(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{Errors: errs})
		return
	}

	user, err := h.users.ByEmail(r.Context(), req.Email)
	if err == users.ErrNotFound {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Server error during login"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	token, err := h.tokens.Generate(user.ID.Hex())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: *user})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required. Please login."})
		return
	}

	user, err := h.users.ByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func validateRegister(req models.RegisterRequest) []string {
	var errs []string
	if !emailPattern.MatchString(req.Email) {
		errs = append(errs, "Please enter a valid email")
	}
	if len(req.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters")
	}
	if len(req.Username) < 3 || len(req.Username) > 30 {
		errs = append(errs, "Username must be between 3 and 30 characters")
	}
	return errs
}

func validateLogin(req models.LoginRequest) []string {
	var errs []string
	if !emailPattern.MatchString(req.Email) {
		errs = append(errs, "Please enter a valid email")
	}
	if req.Password == "" {
		errs = append(errs, "Password is required")
	}
	return errs
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
