package alias

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tunelog/tunelog-backend/internal/domain"
)

const (
	// sentinelKey marks the cache as populated. Alias entries outlive the
	// sentinel so a reload always finds the previous values still present
	// while it rewrites them.
	sentinelKey = "artist_aliases_loaded"

	entryKeyPrefix = "alias:"

	// entryMargin is how much longer alias entries live than the sentinel.
	entryMargin = 10 * time.Second
)

// Resolve returns the cached alias matching the name, or nil, nil when no
// alias exists. Matching is case-insensitive.
func (s *Service) Resolve(ctx context.Context, name string) (*domain.CachedAlias, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	v, ok := s.cache.Get(entryKey(name))
	if !ok {
		return nil, nil
	}

	cached := v.(domain.CachedAlias)
	return &cached, nil
}

// ResolveForCorrection returns the alias only if it may be applied when
// correcting externally sourced metadata. Aliases without the capability
// resolve to nil, nil.
func (s *Service) ResolveForCorrection(ctx context.Context, name string) (*domain.CachedAlias, error) {
	cached, err := s.Resolve(ctx, name)
	if err != nil || cached == nil {
		return nil, err
	}
	if !cached.Options.CorrectMetadata {
		return nil, nil
	}
	return cached, nil
}

// Invalidate expires the sentinel so the next lookup reloads from the store.
// Alias entries are left in place; the reload overwrites them.
func (s *Service) Invalidate() {
	s.cache.Delete(sentinelKey)
}

// ensureLoaded reloads the cache when the sentinel has expired. Reloads are
// at most once per TTL in the steady state, but concurrent misses may reload
// redundantly; each reload writes fresh values before re-setting the
// sentinel, so readers never observe a half-empty cache.
func (s *Service) ensureLoaded(ctx context.Context) error {
	if _, ok := s.cache.Get(sentinelKey); ok {
		return nil
	}

	aliases, err := s.aliases.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load aliases: %w", err)
	}

	entryTTL := s.cfg.CacheTTL + entryMargin
	for _, a := range aliases {
		s.cache.Set(entryKey(a.Alias), domain.CachedAlias{
			Alias:      domain.NormalizeName(a.Alias),
			ArtistID:   a.ArtistID,
			ArtistName: a.ArtistName,
			Options:    a.Options,
		}, entryTTL)
	}
	s.cache.Set(sentinelKey, true, s.cfg.CacheTTL)

	s.log.DebugContext(ctx, "alias cache reloaded", slog.Int("aliases", len(aliases)))
	return nil
}

func entryKey(name string) string {
	return entryKeyPrefix + domain.NormalizeName(name)
}
