package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
)

const profileColumns = `id::text, username, display_name,
	ST_X(location::geometry), ST_Y(location::geometry),
	default_range_km, social_links, created_at, updated_at`

type profileRepository struct{ pool *pgxpool.Pool }

func NewProfileRepository(pool *pgxpool.Pool) repository.ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (model.Profile, error) {
	exec, err := conn(ctx, r.pool)
	if err != nil {
		return model.Profile{}, err
	}
	row := exec.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

// Update builds the SET list from the non-nil fields only, so absent JSON keys never clobber stored values.
func (r *profileRepository) Update(ctx context.Context, id string, u model.ProfileUpdate) (model.Profile, error) {
	exec, err := conn(ctx, r.pool)
	if err != nil {
		return model.Profile{}, err
	}

	q := sq.Update("profiles").
		PlaceholderFormat(sq.Dollar).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + profileColumns)
	if u.DisplayName != nil {
		q = q.Set("display_name", *u.DisplayName)
	}
	if u.Location != nil {
		q = q.Set("location", sq.Expr("ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography", u.Location.Longitude(), u.Location.Latitude()))
	}
	if u.DefaultRangeKm != nil {
		q = q.Set("default_range_km", *u.DefaultRangeKm)
	}
	if u.SocialLinks != nil {
		links, err := encodeJSON(u.SocialLinks)
		if err != nil {
			return model.Profile{}, fmt.Errorf("encode social links: %w", err)
		}
		q = q.Set("social_links", sq.Expr("?::jsonb", links))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return model.Profile{}, fmt.Errorf("build profile update: %w", err)
	}
	return scanProfile(exec.QueryRow(ctx, sql, args...))
}

func scanProfile(row pgx.Row) (model.Profile, error) {
	var (
		out      model.Profile
		lon, lat *float64
		rangeKm  *int
		links    []byte
	)
	err := row.Scan(&out.ID, &out.Username, &out.DisplayName, &lon, &lat, &rangeKm, &links, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, repository.ErrNotFound
		}
		return model.Profile{}, repository.MapPgError(err)
	}
	if lon != nil && lat != nil {
		out.Location = model.NewGeoPoint(*lon, *lat)
	}
	out.DefaultRangeKm = rangeKm
	out.SocialLinks = decodeStringMap(links)
	return out, nil
}

var _ repository.ProfileRepository = (*profileRepository)(nil)
