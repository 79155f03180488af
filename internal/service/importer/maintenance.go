package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tunelog/tunelog-backend/internal/domain"
)

// Commit persists a staged batch in one transaction. An empty batch is an
// error: the original flow treats "commit nothing" as a bug in the caller,
// and no write happens.
func (s *Service) Commit(ctx context.Context, plays []domain.Play) error {
	if len(plays) == 0 {
		return fmt.Errorf("commit import: %w", domain.ErrNothingToImport)
	}

	inserted, err := s.plays.BulkInsert(ctx, plays)
	if err != nil {
		return fmt.Errorf("insert plays: %w", err)
	}

	s.log.InfoContext(ctx, "import committed",
		slog.String("user_id", plays[0].UserID.String()),
		slog.Int("inserted", inserted),
	)
	return nil
}

// Purge deletes every imported play for the user. Live scrobbles and
// untagged legacy rows stay.
func (s *Service) Purge(ctx context.Context, userID uuid.UUID) error {
	deleted, err := s.plays.DeleteImported(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete imported plays: %w", err)
	}

	s.log.InfoContext(ctx, "imported plays purged",
		slog.String("user_id", userID.String()),
		slog.Int64("deleted", deleted),
	)
	return nil
}

// ReclassifyLegacyPlays tags the user's untagged rows as live scrobbles so
// imported and native history stay distinguishable. Idempotent.
func (s *Service) ReclassifyLegacyPlays(ctx context.Context, userID uuid.UUID) error {
	updated, err := s.plays.SetDefaultSource(ctx, userID, domain.PlaySourceLastfm)
	if err != nil {
		return fmt.Errorf("set default play source: %w", err)
	}

	s.log.InfoContext(ctx, "legacy plays reclassified",
		slog.String("user_id", userID.String()),
		slog.Int64("updated", updated),
	)
	return nil
}

// HasImported reports whether the user has any imported history.
func (s *Service) HasImported(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.plays.HasImported(ctx, userID)
}
