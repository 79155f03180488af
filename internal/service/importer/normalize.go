package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tunelog/tunelog-backend/internal/domain"
)

// normalizeEvents turns raw events into candidate plays. Events missing
// artist or track (podcast episodes, local files) are dropped before the
// validity check and not counted as rejected. Timestamps are stamped UTC.
func (s *Service) normalizeEvents(ctx context.Context, userID uuid.UUID, events []domain.RawPlayEvent) ([]domain.Play, int, error) {
	var plays []domain.Play
	var rejected int

	for _, ev := range events {
		if ev.Artist == "" || ev.Track == "" {
			continue
		}

		valid, err := s.validator.IsValidPlay(ctx, ev.Artist, ev.Track, ev.MsPlayed)
		if err != nil {
			return nil, 0, fmt.Errorf("validate play: %w", err)
		}
		if !valid {
			rejected++
			continue
		}

		plays = append(plays, domain.Play{
			UserID:   userID,
			Artist:   ev.Artist,
			Album:    ev.Album,
			Track:    ev.Track,
			PlayedAt: ev.PlayedAt.UTC(),
			MsPlayed: ev.MsPlayed,
			Source:   domain.PlaySourceSpotifyImport,
		})
	}

	return plays, rejected, nil
}
