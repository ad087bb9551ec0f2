package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/Ishwari-N/leetcode-backend/internal/config"
	"github.com/Ishwari-N/leetcode-backend/internal/database"
	"github.com/Ishwari-N/leetcode-backend/internal/importer"
	"github.com/Ishwari-N/leetcode-backend/internal/logging"
	"github.com/Ishwari-N/leetcode-backend/internal/questions"
	"github.com/joho/godotenv"
)

// One-shot batch import of per-company question datasets. Per-record and
// per-batch failures are tallied and reported; only an unreachable store or
// a missing/empty data directory exits non-zero.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(cfg.Env)

	dir := flag.String("dir", cfg.ImportDataDir, "directory of per-company JSON batch files")
	flag.Parse()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(ctx)

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	imp := importer.New(questions.NewStore(db), log)

	summary, err := imp.Run(ctx, *dir)
	if err != nil {
		if errors.Is(err, importer.ErrNoBatches) {
			log.Errorf("No batch files in %s", *dir)
		} else {
			log.Errorf("Import failed: %v", err)
		}
		os.Exit(1)
	}

	for company, batchErr := range summary.BatchErrors {
		log.Warnf("Batch %s failed: %v", company, batchErr)
	}
}
