// Package alias implements the artist alias store backed by PostgreSQL.
// Alias rows are maintained by an administrative flow; this repo reads them
// and updates only the options capabilities.
package alias

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/tunelog/tunelog-backend/internal/adapter/postgres"
	"github.com/tunelog/tunelog-backend/internal/domain"
)

// Repo provides artist alias persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new alias repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// aliasRow mirrors an artist_aliases row joined with artists for scany.
type aliasRow struct {
	ID         uuid.UUID `db:"id"`
	ArtistID   uuid.UUID `db:"artist_id"`
	ArtistName string    `db:"artist_name"`
	Alias      string    `db:"alias"`
	Options    int16     `db:"options"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r aliasRow) toDomain() domain.ArtistAlias {
	return domain.ArtistAlias{
		ID:         r.ID,
		ArtistID:   r.ArtistID,
		ArtistName: r.ArtistName,
		Alias:      r.Alias,
		Options:    domain.AliasOptionsFromBits(r.Options),
		CreatedAt:  r.CreatedAt,
	}
}

func selectBuilder() squirrel.SelectBuilder {
	return postgres.Builder().
		Select("a.id", "a.artist_id", "ar.name AS artist_name", "a.alias", "a.options", "a.created_at").
		From("artist_aliases a").
		Join("artists ar ON ar.id = a.artist_id")
}

// ListAll returns every alias with its canonical artist display name.
func (r *Repo) ListAll(ctx context.Context) ([]domain.ArtistAlias, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := selectBuilder().OrderBy("a.alias ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list aliases query: %w", err)
	}

	var rows []aliasRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list artist_aliases: %w", err)
	}

	aliases := make([]domain.ArtistAlias, len(rows))
	for i, row := range rows {
		aliases[i] = row.toDomain()
	}
	return aliases, nil
}

// GetByText returns the alias matching the given text case-insensitively.
// Returns nil, nil when no alias matches.
func (r *Repo) GetByText(ctx context.Context, text string) (*domain.ArtistAlias, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := selectBuilder().
		Where("lower(a.alias) = lower(?)", text).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get alias by text query: %w", err)
	}

	var row aliasRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.MapError(err, "artist_alias", text)
	}

	alias := row.toDomain()
	return &alias, nil
}

// GetByID returns an alias by primary key.
// Returns domain.ErrNotFound if the alias does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ArtistAlias, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := selectBuilder().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get alias by id query: %w", err)
	}

	var row aliasRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "artist_alias", id)
	}

	alias := row.toDomain()
	return &alias, nil
}

// UpdateOptions overwrites the alias capabilities and returns the updated
// row. The alias cache is NOT touched here; callers needing immediate
// consistency invalidate it themselves.
func (r *Repo) UpdateOptions(ctx context.Context, id uuid.UUID, opts domain.AliasOptions) (*domain.ArtistAlias, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Update("artist_aliases").
		Set("options", opts.Bits()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update alias options query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "artist_alias", id)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("artist_alias %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}
