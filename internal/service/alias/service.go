// Package alias resolves artist name aliases through a TTL-guarded
// in-process cache backed by the alias store.
package alias

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/tunelog/tunelog-backend/internal/config"
	"github.com/tunelog/tunelog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type aliasRepo interface {
	ListAll(ctx context.Context) ([]domain.ArtistAlias, error)
	GetByText(ctx context.Context, text string) (*domain.ArtistAlias, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ArtistAlias, error)
	UpdateOptions(ctx context.Context, id uuid.UUID, opts domain.AliasOptions) (*domain.ArtistAlias, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service looks up artist aliases. Lookups hit the cache; a sentinel key
// bounds how stale the cache may get, and a miss on the sentinel triggers a
// full reload from the store.
type Service struct {
	log     *slog.Logger
	aliases aliasRepo
	cache   *gocache.Cache
	cfg     config.AliasConfig
}

// NewService creates a new alias service. The cache is injected so tests and
// multiple consumers can share or isolate it.
func NewService(logger *slog.Logger, aliases aliasRepo, cache *gocache.Cache, cfg config.AliasConfig) *Service {
	return &Service{
		log:     logger.With("service", "alias"),
		aliases: aliases,
		cache:   cache,
		cfg:     cfg,
	}
}
