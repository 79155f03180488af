// Package play implements the per-user time-series play store backed by
// PostgreSQL. Rows are inserted in bulk and never mutated; maintenance
// operations delete by source or tag legacy rows.
package play

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/tunelog/tunelog-backend/internal/adapter/postgres"
	"github.com/tunelog/tunelog-backend/internal/domain"
)

const table = "user_plays"

var columns = []string{
	"user_id", "artist_name", "album_name", "track_name",
	"time_played", "ms_played", "play_source",
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo provides play persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.Querier
	txm txManager
}

// New creates a new play repository.
func New(db postgres.Querier, txm txManager) *Repo {
	return &Repo{db: db, txm: txm}
}

// playRow mirrors a user_plays row for scany.
type playRow struct {
	UserID   uuid.UUID `db:"user_id"`
	Artist   string    `db:"artist_name"`
	Album    *string   `db:"album_name"`
	Track    string    `db:"track_name"`
	PlayedAt time.Time `db:"time_played"`
	MsPlayed int64     `db:"ms_played"`
	Source   *string   `db:"play_source"`
}

func (r playRow) toDomain() domain.Play {
	p := domain.Play{
		UserID:   r.UserID,
		Artist:   r.Artist,
		Album:    r.Album,
		Track:    r.Track,
		PlayedAt: r.PlayedAt.UTC(),
		MsPlayed: r.MsPlayed,
	}
	if r.Source != nil {
		p.Source = domain.PlaySource(*r.Source)
	}
	return p
}

// GetByUser returns a user's play history, newest first. A limit <= 0 means
// no limit: deduplication reads the full history because export files can
// span many years.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Play, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("time_played DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get plays query: %w", err)
	}

	var rows []playRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user_plays", userID)
	}

	plays := make([]domain.Play, len(rows))
	for i, row := range rows {
		plays[i] = row.toDomain()
	}
	return plays, nil
}

// BulkInsert inserts all plays in a single transaction using pgx.Batch.
// A failure rolls the whole batch back; partial inserts never survive.
// Returns the number of inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, plays []domain.Play) (int, error) {
	if len(plays) == 0 {
		return 0, nil
	}

	var inserted int
	err := r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		q := postgres.QuerierFromCtx(txCtx, r.db)

		batch := &pgx.Batch{}
		for _, p := range plays {
			batch.Queue(
				`INSERT INTO user_plays (user_id, artist_name, album_name, track_name, time_played, ms_played, play_source)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				p.UserID, p.Artist, p.Album, p.Track, p.PlayedAt.UTC(), p.MsPlayed, sourceOrNil(p.Source),
			)
		}

		results := q.SendBatch(txCtx, batch)
		defer results.Close()

		for i := 0; i < batch.Len(); i++ {
			tag, err := results.Exec()
			if err != nil {
				return fmt.Errorf("batch insert plays: %w", err)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, postgres.MapError(err, "user_plays", plays[0].UserID)
	}

	return inserted, nil
}

// DeleteImported removes every play that carries an import-origin source tag.
// Live scrobbles (and untagged legacy rows) are untouched.
// Returns the number of deleted rows.
func (r *Repo) DeleteImported(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"play_source": nil}).
		Where(squirrel.NotEq{"play_source": string(domain.PlaySourceLastfm)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete imported query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "user_plays", userID)
	}
	return tag.RowsAffected(), nil
}

// SetDefaultSource tags a user's untagged legacy rows with the given source.
// Already-tagged rows are untouched, so re-running is a no-op.
// Returns the number of updated rows.
func (r *Repo) SetDefaultSource(ctx context.Context, userID uuid.UUID, source domain.PlaySource) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Update(table).
		Set("play_source", string(source)).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"play_source": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build set default source query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "user_plays", userID)
	}
	return tag.RowsAffected(), nil
}

// HasImported reports whether the user has any play from an import origin.
func (r *Repo) HasImported(ctx context.Context, userID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM user_plays
			WHERE user_id = $1 AND play_source IS NOT NULL AND play_source <> $2
		)`,
		userID, string(domain.PlaySourceLastfm),
	).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "user_plays", userID)
	}
	return exists, nil
}

// sourceOrNil maps the zero PlaySource to NULL for the nullable column.
func sourceOrNil(s domain.PlaySource) *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}
