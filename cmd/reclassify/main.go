// Command reclassify tags a user's untagged legacy plays as live scrobbles.
// It exists for backfilling users created before play sources were tracked;
// re-running is harmless.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tunelog/tunelog-backend/internal/adapter/postgres"
	"github.com/tunelog/tunelog-backend/internal/adapter/postgres/play"
	"github.com/tunelog/tunelog-backend/internal/app"
	"github.com/tunelog/tunelog-backend/internal/config"
	"github.com/tunelog/tunelog-backend/internal/domain"
)

func main() {
	userFlag := flag.String("user", "", "user UUID (required)")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatalf("invalid --user: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	playRepo := play.New(pool, postgres.NewTxManager(pool))

	updated, err := playRepo.SetDefaultSource(ctx, userID, domain.PlaySourceLastfm)
	if err != nil {
		logger.Error("reclassify failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("reclassify completed",
		slog.String("user_id", userID.String()),
		slog.Int64("updated", updated),
	)
}
