package alias

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tunelog/tunelog-backend/internal/domain"
)

// AliasByText fetches an alias straight from the store, bypassing the cache.
// Returns nil, nil when no alias matches.
func (s *Service) AliasByText(ctx context.Context, text string) (*domain.ArtistAlias, error) {
	return s.aliases.GetByText(ctx, text)
}

// AliasByID fetches an alias by primary key straight from the store.
func (s *Service) AliasByID(ctx context.Context, id uuid.UUID) (*domain.ArtistAlias, error) {
	return s.aliases.GetByID(ctx, id)
}

// SetAliasOptions overwrites an alias's capabilities and returns the updated
// row. The cache is NOT invalidated here: callers wanting lookups to see the
// change immediately call Invalidate themselves, otherwise it lands within
// one TTL.
func (s *Service) SetAliasOptions(ctx context.Context, id uuid.UUID, opts domain.AliasOptions) (*domain.ArtistAlias, error) {
	updated, err := s.aliases.UpdateOptions(ctx, id, opts)
	if err != nil {
		return nil, fmt.Errorf("update alias options: %w", err)
	}

	s.log.InfoContext(ctx, "alias options updated",
		slog.String("alias_id", id.String()),
		slog.Bool("no_redirect", opts.NoRedirect),
		slog.Bool("correct_metadata", opts.CorrectMetadata),
	)
	return updated, nil
}
