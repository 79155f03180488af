package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tunelog/tunelog-backend/internal/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		if err := MapError(nil, "play", "u1"); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		t.Parallel()
		err := MapError(pgx.ErrNoRows, "artist_alias", "beetles")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unique violation maps to already exists", func(t *testing.T) {
		t.Parallel()
		err := MapError(&pgconn.PgError{Code: "23505"}, "play", "u1")
		if !errors.Is(err, domain.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("context errors pass through unmapped", func(t *testing.T) {
		t.Parallel()
		err := MapError(context.DeadlineExceeded, "play", "u1")
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected DeadlineExceeded, got %v", err)
		}
		if errors.Is(err, domain.ErrNotFound) {
			t.Error("context error must not map to a domain error")
		}
	})
}
