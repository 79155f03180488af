package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tunelog/tunelog-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedArtist creates an artist row and returns its ID. An empty name gets a
// unique generated one.
func SeedArtist(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	if name == "" {
		name = "Test Artist " + uniqueSuffix()
	}

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO artists (id, name, created_at) VALUES ($1, $2, $3)`,
		id, name, time.Now().UTC().Truncate(time.Microsecond),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedArtist insert: %v", err)
	}

	return id
}

// SeedAlias creates an artist_aliases row pointing at the given artist.
func SeedAlias(t *testing.T, pool *pgxpool.Pool, artistID uuid.UUID, alias string, opts domain.AliasOptions) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO artist_aliases (id, artist_id, alias, options, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, artistID, alias, opts.Bits(), time.Now().UTC().Truncate(time.Microsecond),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAlias insert: %v", err)
	}

	return id
}

// SeedPlay inserts a single play row directly, bypassing the repository.
func SeedPlay(t *testing.T, pool *pgxpool.Pool, p domain.Play) {
	t.Helper()
	ctx := context.Background()

	var source *string
	if p.Source != "" {
		s := string(p.Source)
		source = &s
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO user_plays (user_id, artist_name, album_name, track_name, time_played, ms_played, play_source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.UserID, p.Artist, p.Album, p.Track, p.PlayedAt.UTC(), p.MsPlayed, source,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPlay insert: %v", err)
	}
}
