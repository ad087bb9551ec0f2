package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables,
// with defaults suitable for local development.
type Config struct {
	Env  string // development, staging, production
	Port string

	MongoURI string
	MongoDB  string

	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowedOrigins []string

	// Base URL of the external stats service, without trailing slash.
	LeetcodeStatsURL string

	// Directory of per-company JSON batches for the importer.
	ImportDataDir string
}

func Load() Config {
	return Config{
		Env:                getenv("APP_ENV", "development"),
		Port:               getenv("PORT", "5000"),
		MongoURI:           getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:            getenv("MONGODB_DB", "leetcode_tracker"),
		JWTSecret:          getenv("JWT_SECRET", "your_fallback_secret_key_please_change_in_production"),
		JWTTTL:             getdur("JWT_TTL", 7*24*time.Hour),
		CORSAllowedOrigins: getlist("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		LeetcodeStatsURL:   getenv("LEETCODE_STATS_URL", "https://leetcode-stats-api.herokuapp.com"),
		ImportDataDir:      getenv("IMPORT_DATA_DIR", "data/company-wise-leetcode"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getlist(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
