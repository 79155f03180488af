package play_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tunelog/tunelog-backend/internal/adapter/postgres"
	"github.com/tunelog/tunelog-backend/internal/adapter/postgres/play"
	"github.com/tunelog/tunelog-backend/internal/adapter/postgres/testhelper"
	"github.com/tunelog/tunelog-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*play.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return play.New(pool, postgres.NewTxManager(pool)), pool
}

// buildPlay creates a domain.Play for testing.
func buildPlay(userID uuid.UUID, track string, playedAt time.Time, source domain.PlaySource) domain.Play {
	album := "Abbey Road"
	return domain.Play{
		UserID:   userID,
		Artist:   "The Beatles",
		Album:    &album,
		Track:    track,
		PlayedAt: playedAt.UTC().Truncate(time.Microsecond),
		MsPlayed: 215000,
		Source:   source,
	}
}

func TestRepo_BulkInsert_And_GetByUser(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	plays := []domain.Play{
		buildPlay(userID, "Come Together", base, domain.PlaySourceSpotifyImport),
		buildPlay(userID, "Something", base.Add(4*time.Minute), domain.PlaySourceSpotifyImport),
		buildPlay(userID, "Octopus's Garden", base.Add(8*time.Minute), domain.PlaySourceLastfm),
	}

	inserted, err := repo.BulkInsert(ctx, plays)
	if err != nil {
		t.Fatalf("BulkInsert: unexpected error: %v", err)
	}
	if inserted != 3 {
		t.Errorf("inserted: got %d, want 3", inserted)
	}

	got, err := repo.GetByUser(ctx, userID, 0)
	if err != nil {
		t.Fatalf("GetByUser: unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("plays: got %d, want 3", len(got))
	}

	// Newest first.
	if got[0].Track != "Octopus's Garden" {
		t.Errorf("order: got %q first, want %q", got[0].Track, "Octopus's Garden")
	}
	if got[0].Source != domain.PlaySourceLastfm {
		t.Errorf("source: got %q, want %q", got[0].Source, domain.PlaySourceLastfm)
	}
	if got[2].PlayedAt != plays[0].PlayedAt {
		t.Errorf("timestamp: got %v, want %v", got[2].PlayedAt, plays[0].PlayedAt)
	}
	if got[0].Album == nil || *got[0].Album != "Abbey Road" {
		t.Errorf("album: got %v, want %q", got[0].Album, "Abbey Road")
	}
}

func TestRepo_BulkInsert_Empty(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	inserted, err := repo.BulkInsert(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted != 0 {
		t.Errorf("inserted: got %d, want 0", inserted)
	}
}

func TestRepo_GetByUser_Limit(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	var plays []domain.Play
	for i := 0; i < 5; i++ {
		plays = append(plays, buildPlay(userID, "Track", base.Add(time.Duration(i)*time.Minute), domain.PlaySourceLastfm))
	}
	if _, err := repo.BulkInsert(ctx, plays); err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}

	got, err := repo.GetByUser(ctx, userID, 2)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("limited plays: got %d, want 2", len(got))
	}
}

func TestRepo_GetByUser_NoPlays(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	got, err := repo.GetByUser(context.Background(), uuid.New(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("plays: got %d, want 0", len(got))
	}
}

func TestRepo_DeleteImported(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	base := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	testhelper.SeedPlay(t, pool, buildPlay(userID, "Imported", base, domain.PlaySourceSpotifyImport))
	testhelper.SeedPlay(t, pool, buildPlay(userID, "Scrobbled", base.Add(time.Minute), domain.PlaySourceLastfm))
	testhelper.SeedPlay(t, pool, buildPlay(userID, "Legacy", base.Add(2*time.Minute), ""))
	testhelper.SeedPlay(t, pool, buildPlay(otherID, "Imported elsewhere", base, domain.PlaySourceSpotifyImport))

	deleted, err := repo.DeleteImported(ctx, userID)
	if err != nil {
		t.Fatalf("DeleteImported: unexpected error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted: got %d, want 1", deleted)
	}

	remaining, err := repo.GetByUser(ctx, userID, 0)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("remaining plays: got %d, want 2", len(remaining))
	}
	for _, p := range remaining {
		if p.Source == domain.PlaySourceSpotifyImport {
			t.Errorf("imported play %q survived purge", p.Track)
		}
	}

	// The other user's imported history is untouched.
	others, err := repo.GetByUser(ctx, otherID, 0)
	if err != nil {
		t.Fatalf("GetByUser other: %v", err)
	}
	if len(others) != 1 {
		t.Errorf("other user's plays: got %d, want 1", len(others))
	}
}

func TestRepo_SetDefaultSource_Idempotent(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Date(2020, 6, 1, 9, 0, 0, 0, time.UTC)
	testhelper.SeedPlay(t, pool, buildPlay(userID, "Legacy 1", base, ""))
	testhelper.SeedPlay(t, pool, buildPlay(userID, "Legacy 2", base.Add(time.Minute), ""))
	testhelper.SeedPlay(t, pool, buildPlay(userID, "Tagged", base.Add(2*time.Minute), domain.PlaySourceSpotifyImport))

	updated, err := repo.SetDefaultSource(ctx, userID, domain.PlaySourceLastfm)
	if err != nil {
		t.Fatalf("SetDefaultSource: unexpected error: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated: got %d, want 2", updated)
	}

	// Re-running touches nothing.
	updated, err = repo.SetDefaultSource(ctx, userID, domain.PlaySourceLastfm)
	if err != nil {
		t.Fatalf("SetDefaultSource second run: %v", err)
	}
	if updated != 0 {
		t.Errorf("second run updated: got %d, want 0", updated)
	}

	plays, err := repo.GetByUser(ctx, userID, 0)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	for _, p := range plays {
		if p.Source == "" {
			t.Errorf("play %q still untagged", p.Track)
		}
	}
	if plays[0].Source != domain.PlaySourceSpotifyImport {
		t.Errorf("tagged play source overwritten: got %q", plays[0].Source)
	}
}

func TestRepo_HasImported(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	testhelper.SeedPlay(t, pool, buildPlay(userID, "Scrobbled", base, domain.PlaySourceLastfm))

	has, err := repo.HasImported(ctx, userID)
	if err != nil {
		t.Fatalf("HasImported: unexpected error: %v", err)
	}
	if has {
		t.Error("HasImported: got true with only live scrobbles")
	}

	testhelper.SeedPlay(t, pool, buildPlay(userID, "Imported", base.Add(time.Minute), domain.PlaySourceSpotifyImport))

	has, err = repo.HasImported(ctx, userID)
	if err != nil {
		t.Fatalf("HasImported after import: %v", err)
	}
	if !has {
		t.Error("HasImported: got false after an imported play")
	}
}
