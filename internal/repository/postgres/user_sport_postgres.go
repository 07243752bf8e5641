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

type userSportRepository struct{ pool *pgxpool.Pool }

func NewUserSportRepository(pool *pgxpool.Pool) repository.UserSportRepository {
	return &userSportRepository{pool: pool}
}

func (r *userSportRepository) ListByUser(ctx context.Context, userID string) ([]model.UserSport, error) {
	exec, err := conn(ctx, r.pool)
	if err != nil {
		return nil, err
	}
	rows, err := exec.Query(ctx,
		`SELECT us.sport_id, s.name, us.parameters, us.custom_range_km
		 FROM user_sports us
		 JOIN sports s ON s.id = us.sport_id
		 WHERE us.user_id = $1
		 ORDER BY us.id`, userID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := make([]model.UserSport, 0, 4)
	for rows.Next() {
		it, err := scanUserSport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, repository.MapPgError(rows.Err())
}

func (r *userSportRepository) Exists(ctx context.Context, userID string, sportID int64) (bool, error) {
	exec, err := conn(ctx, r.pool)
	if err != nil {
		return false, err
	}
	var exists bool
	err = exec.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_sports WHERE user_id = $1 AND sport_id = $2)`, userID, sportID,
	).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

func (r *userSportRepository) Create(ctx context.Context, userID string, s model.UserSport) (model.UserSport, error) {
	exec, err := conn(ctx, r.pool)
	if err != nil {
		return model.UserSport{}, err
	}
	params, err := encodeJSON(s.Parameters)
	if err != nil {
		return model.UserSport{}, fmt.Errorf("encode parameters: %w", err)
	}
	row := exec.QueryRow(ctx,
		`WITH ins AS (
			INSERT INTO user_sports (user_id, sport_id, parameters, custom_range_km)
			VALUES ($1, $2, $3::jsonb, $4)
			RETURNING sport_id, parameters, custom_range_km
		)
		SELECT ins.sport_id, s.name, ins.parameters, ins.custom_range_km
		FROM ins JOIN sports s ON s.id = ins.sport_id`,
		userID, s.SportID, params, s.CustomRangeKm,
	)
	out, err := scanUserSport(row)
	if errors.Is(err, repository.ErrNotFound) {
		// the join can only come back empty if the sport vanished mid-insert
		return model.UserSport{}, repository.ErrConflict
	}
	return out, err
}

func (r *userSportRepository) Update(ctx context.Context, userID string, sportID int64, u model.UserSportUpdate) (model.UserSport, error) {
	exec, err := conn(ctx, r.pool)
	if err != nil {
		return model.UserSport{}, err
	}

	q := sq.Update("user_sports").
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"user_id": userID, "sport_id": sportID}).
		Suffix(`RETURNING sport_id, (SELECT name FROM sports WHERE id = user_sports.sport_id), parameters, custom_range_km`)
	if u.Parameters != nil {
		params, err := encodeJSON(u.Parameters)
		if err != nil {
			return model.UserSport{}, fmt.Errorf("encode parameters: %w", err)
		}
		q = q.Set("parameters", sq.Expr("?::jsonb", params))
	}
	switch {
	case u.ClearCustomRange:
		q = q.Set("custom_range_km", nil)
	case u.CustomRangeKm != nil:
		q = q.Set("custom_range_km", *u.CustomRangeKm)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return model.UserSport{}, fmt.Errorf("build user sport update: %w", err)
	}
	return scanUserSport(exec.QueryRow(ctx, sql, args...))
}

func (r *userSportRepository) Delete(ctx context.Context, userID string, sportID int64) error {
	exec, err := conn(ctx, r.pool)
	if err != nil {
		return err
	}
	tag, err := exec.Exec(ctx, `DELETE FROM user_sports WHERE user_id = $1 AND sport_id = $2`, userID, sportID)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUserSport(row pgx.Row) (model.UserSport, error) {
	var (
		out    model.UserSport
		params []byte
	)
	if err := row.Scan(&out.SportID, &out.Name, &params, &out.CustomRangeKm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserSport{}, repository.ErrNotFound
		}
		return model.UserSport{}, repository.MapPgError(err)
	}
	out.Parameters = decodeObject(params)
	return out, nil
}

var _ repository.UserSportRepository = (*userSportRepository)(nil)
