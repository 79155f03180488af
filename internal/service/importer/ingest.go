package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tunelog/tunelog-backend/internal/domain"
)

// Ingest runs the staging half of an import: parse the export files,
// validate and normalize the events, and drop everything already present in
// the user's imported history. The result is held in memory; call Commit to
// persist it. Infrastructure failures (oracle or store I/O) return a non-nil
// error; a broken export file returns IngestStatusParseFailed with nil error
// so the hosting layer can tell the user.
func (s *Service) Ingest(ctx context.Context, userID uuid.UUID, attachments []domain.Attachment) (*IngestResult, error) {
	events, err := s.parser.ParseFiles(ctx, attachments)
	if err != nil {
		s.log.WarnContext(ctx, "import parse failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return &IngestResult{
			Status:        IngestStatusParseFailed,
			FailureReason: err.Error(),
		}, nil
	}

	if len(events) == 0 {
		return &IngestResult{Status: IngestStatusEmpty}, nil
	}

	candidates, rejected, err := s.normalizeEvents(ctx, userID, events)
	if err != nil {
		return nil, fmt.Errorf("normalize events: %w", err)
	}

	plays, err := s.dedupe(ctx, userID, candidates)
	if err != nil {
		return nil, fmt.Errorf("deduplicate plays: %w", err)
	}

	s.log.InfoContext(ctx, "import staged",
		slog.String("user_id", userID.String()),
		slog.Int("events", len(events)),
		slog.Int("accepted", len(candidates)),
		slog.Int("rejected", rejected),
		slog.Int("new", len(plays)),
	)

	result := &IngestResult{
		Status:   IngestStatusOK,
		Plays:    plays,
		Accepted: len(candidates),
		Rejected: rejected,
	}
	if len(plays) == 0 {
		result.Status = IngestStatusEmpty
	}
	return result, nil
}
