package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tunelog/tunelog-backend/internal/domain"
)

// dedupe drops candidates whose timestamp already exists in the user's
// imported history. The key is the timestamp alone: one import source cannot
// play two tracks at the same instant, and export re-uploads carry identical
// timestamps. Within the batch the first occurrence wins, preserving file
// order.
func (s *Service) dedupe(ctx context.Context, userID uuid.UUID, candidates []domain.Play) ([]domain.Play, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	existing, err := s.plays.GetByUser(ctx, userID, s.cfg.HistoryFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("load existing plays: %w", err)
	}

	seen := make(map[time.Time]struct{}, len(existing))
	for _, p := range existing {
		if p.Source == domain.PlaySourceSpotifyImport {
			seen[p.PlayedAt.UTC()] = struct{}{}
		}
	}

	var kept []domain.Play
	for _, c := range candidates {
		ts := c.PlayedAt.UTC()
		if _, dup := seen[ts]; dup {
			continue
		}
		seen[ts] = struct{}{}
		kept = append(kept, c)
	}

	return kept, nil
}
