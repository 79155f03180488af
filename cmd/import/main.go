// Command import ingests a user's Spotify extended streaming history into
// their listening history. Export files are passed as URL attachments the
// way the hosting layer hands them over.
//
// Flags:
//
//	--user     user UUID (required)
//	--file     export file as "filename=url"; repeatable
//	--replace  purge previously imported plays first
//	--dry-run  stage and report without writing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tunelog/tunelog-backend/internal/adapter/postgres"
	"github.com/tunelog/tunelog-backend/internal/adapter/postgres/play"
	"github.com/tunelog/tunelog-backend/internal/adapter/spotify"
	"github.com/tunelog/tunelog-backend/internal/app"
	"github.com/tunelog/tunelog-backend/internal/config"
	"github.com/tunelog/tunelog-backend/internal/domain"
	"github.com/tunelog/tunelog-backend/internal/service/importer"
	"github.com/tunelog/tunelog-backend/internal/service/scrobble"
)

// fileList collects repeated --file flags.
type fileList []domain.Attachment

func (f *fileList) String() string {
	names := make([]string, len(*f))
	for i, att := range *f {
		names[i] = att.Filename
	}
	return strings.Join(names, ",")
}

func (f *fileList) Set(value string) error {
	name, url, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("expected filename=url, got %q", value)
	}
	*f = append(*f, domain.Attachment{Filename: name, URL: url})
	return nil
}

func main() {
	var files fileList
	userFlag := flag.String("user", "", "user UUID (required)")
	flag.Var(&files, "file", `export file as "filename=url"; repeatable`)
	replaceFlag := flag.Bool("replace", false, "purge previously imported plays first")
	dryRunFlag := flag.Bool("dry-run", false, "stage and report without writing")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatalf("invalid --user: %v", err)
	}
	if len(files) == 0 {
		log.Fatal("at least one --file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	playRepo := play.New(pool, postgres.NewTxManager(pool))
	parser := spotify.NewParser(cfg.Import.FetchTimeout, logger)
	validator := scrobble.NewValidator(cfg.Import)
	svc := importer.NewService(logger, parser, validator, playRepo, cfg.Import)

	if *replaceFlag && !*dryRunFlag {
		if err := svc.Purge(ctx, userID); err != nil {
			logger.Error("purge failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	result, err := svc.Ingest(ctx, userID, files)
	if err != nil {
		logger.Error("ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	switch result.Status {
	case importer.IngestStatusParseFailed:
		logger.Error("import failed entirely", slog.String("reason", result.FailureReason))
		os.Exit(1)
	case importer.IngestStatusEmpty:
		logger.Info("nothing to import",
			slog.Int("accepted", result.Accepted),
			slog.Int("rejected", result.Rejected),
		)
		return
	}

	if *dryRunFlag {
		logger.Info("dry run: staged plays not written",
			slog.Int("plays", len(result.Plays)),
			slog.Int("accepted", result.Accepted),
			slog.Int("rejected", result.Rejected),
		)
		return
	}

	if err := svc.ReclassifyLegacyPlays(ctx, userID); err != nil {
		logger.Error("reclassify failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := svc.Commit(ctx, result.Plays); err != nil {
		logger.Error("commit failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import completed",
		slog.String("user_id", userID.String()),
		slog.Int("plays", len(result.Plays)),
		slog.Int("accepted", result.Accepted),
		slog.Int("rejected", result.Rejected),
	)
}
