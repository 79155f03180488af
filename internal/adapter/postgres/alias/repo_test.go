package alias_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tunelog/tunelog-backend/internal/adapter/postgres/alias"
	"github.com/tunelog/tunelog-backend/internal/adapter/postgres/testhelper"
	"github.com/tunelog/tunelog-backend/internal/domain"
)

func TestRepo_GetByText(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := alias.New(pool)
	ctx := context.Background()

	artistID := testhelper.SeedArtist(t, pool, "The Beatles")
	aliasID := testhelper.SeedAlias(t, pool, artistID, "Beetles", domain.AliasOptions{CorrectMetadata: true})

	tests := []struct {
		name string
		text string
	}{
		{name: "exact match", text: "Beetles"},
		{name: "different case", text: "BEETLES"},
		{name: "lowercase", text: "beetles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByText(ctx, tt.text)
			if err != nil {
				t.Fatalf("GetByText(%q): unexpected error: %v", tt.text, err)
			}
			if got == nil {
				t.Fatalf("GetByText(%q): got nil alias", tt.text)
			}
			if got.ID != aliasID {
				t.Errorf("alias ID: got %s, want %s", got.ID, aliasID)
			}
			if got.ArtistID != artistID {
				t.Errorf("artist ID: got %s, want %s", got.ArtistID, artistID)
			}
			if got.ArtistName != "The Beatles" {
				t.Errorf("artist name: got %q, want %q", got.ArtistName, "The Beatles")
			}
			if !got.Options.CorrectMetadata {
				t.Error("CorrectMetadata flag lost")
			}
			if got.Options.NoRedirect {
				t.Error("NoRedirect flag set unexpectedly")
			}
		})
	}
}

func TestRepo_GetByText_NotFound(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := alias.New(pool)

	got, err := repo.GetByText(context.Background(), "no such alias "+uuid.New().String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestRepo_GetByID(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := alias.New(pool)
	ctx := context.Background()

	artistID := testhelper.SeedArtist(t, pool, "")
	aliasID := testhelper.SeedAlias(t, pool, artistID, "Alias "+uuid.New().String(), domain.AliasOptions{})

	got, err := repo.GetByID(ctx, aliasID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.ID != aliasID {
		t.Errorf("alias ID: got %s, want %s", got.ID, aliasID)
	}

	_, err = repo.GetByID(ctx, uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing alias: got error %v, want ErrNotFound", err)
	}
}

func TestRepo_ListAll(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := alias.New(pool)
	ctx := context.Background()

	artistID := testhelper.SeedArtist(t, pool, "")
	first := testhelper.SeedAlias(t, pool, artistID, "List test A "+uuid.New().String(), domain.AliasOptions{NoRedirect: true})
	second := testhelper.SeedAlias(t, pool, artistID, "List test B "+uuid.New().String(), domain.AliasOptions{})

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: unexpected error: %v", err)
	}

	found := map[uuid.UUID]bool{}
	for _, a := range all {
		found[a.ID] = true
	}
	if !found[first] || !found[second] {
		t.Errorf("seeded aliases missing from ListAll: first=%v second=%v", found[first], found[second])
	}
}

func TestRepo_UpdateOptions(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := alias.New(pool)
	ctx := context.Background()

	artistID := testhelper.SeedArtist(t, pool, "")
	aliasID := testhelper.SeedAlias(t, pool, artistID, "Update test "+uuid.New().String(), domain.AliasOptions{})

	updated, err := repo.UpdateOptions(ctx, aliasID, domain.AliasOptions{NoRedirect: true, CorrectMetadata: true})
	if err != nil {
		t.Fatalf("UpdateOptions: unexpected error: %v", err)
	}
	if !updated.Options.NoRedirect || !updated.Options.CorrectMetadata {
		t.Errorf("options not persisted: %+v", updated.Options)
	}

	// Persisted, not just echoed.
	got, err := repo.GetByID(ctx, aliasID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.Options != updated.Options {
		t.Errorf("re-read options: got %+v, want %+v", got.Options, updated.Options)
	}
}

func TestRepo_UpdateOptions_NotFound(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := alias.New(pool)

	_, err := repo.UpdateOptions(context.Background(), uuid.New(), domain.AliasOptions{NoRedirect: true})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}
