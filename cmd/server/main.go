package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ishwari-N/leetcode-backend/internal/auth"
	"github.com/Ishwari-N/leetcode-backend/internal/config"
	"github.com/Ishwari-N/leetcode-backend/internal/database"
	"github.com/Ishwari-N/leetcode-backend/internal/leetcode"
	"github.com/Ishwari-N/leetcode-backend/internal/logging"
	"github.com/Ishwari-N/leetcode-backend/internal/progress"
	"github.com/Ishwari-N/leetcode-backend/internal/questions"
	"github.com/Ishwari-N/leetcode-backend/internal/users"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(cfg.Env)

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(ctx)

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Stores and services
	userStore := users.NewStore(db)
	questionStore := questions.NewStore(db)
	progressStore := progress.NewStore(db)
	progressService := progress.NewService(progressStore, questionStore)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authHandler := auth.NewHandler(userStore, tokens)
	questionHandler := questions.NewHandler(questionStore)
	progressHandler := progress.NewHandler(progressService)
	leetcodeHandler := leetcode.NewHandler(userStore, leetcode.NewClient(cfg.LeetcodeStatsURL), log)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	api.HandleFunc("/questions", questionHandler.List).Methods("GET")
	api.HandleFunc("/questions", questionHandler.Create).Methods("POST")
	api.HandleFunc("/questions/companies", questionHandler.Companies).Methods("GET")
	api.HandleFunc("/questions/company/{name}", questionHandler.ByCompany).Methods("GET")
	api.HandleFunc("/questions/{id}", questionHandler.Update).Methods("PUT")

	api.HandleFunc("/leetcode/test", leetcodeHandler.Test).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(tokens.Middleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/progress", progressHandler.Get).Methods("GET")
	protected.HandleFunc("/progress/stats", progressHandler.Stats).Methods("GET")
	protected.HandleFunc("/progress/{questionId}", progressHandler.Update).Methods("PUT")
	protected.HandleFunc("/leetcode/set-username", leetcodeHandler.SetUsername).Methods("POST")
	protected.HandleFunc("/leetcode/sync", leetcodeHandler.Sync).Methods("POST")
	protected.HandleFunc("/leetcode/stats", leetcodeHandler.Stats).Methods("GET")
	protected.HandleFunc("/leetcode/check-problem/{problemId}", leetcodeHandler.CheckProblem).Methods("GET")

	// Liveness banner
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message":   "LeetCode Tracker API is live!",
			"status":    "Healthy",
			"env":       cfg.Env,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	// Health check reports store readiness
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		dbStatus := "Disconnected"
		if db.Ready(r.Context()) {
			dbStatus = "Connected"
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "OK",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
