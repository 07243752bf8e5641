package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
)

type sportRepository struct{ pool *pgxpool.Pool }

func NewSportRepository(pool *pgxpool.Pool) repository.SportRepository {
	return &sportRepository{pool: pool}
}

func (r *sportRepository) List(ctx context.Context) ([]model.Sport, error) {
	exec, err := conn(ctx, r.pool)
	if err != nil {
		return nil, err
	}
	rows, err := exec.Query(ctx, `SELECT id, name FROM sports ORDER BY id`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := make([]model.Sport, 0, 16)
	for rows.Next() {
		var s model.Sport
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, s)
	}
	return out, repository.MapPgError(rows.Err())
}

func (r *sportRepository) Exists(ctx context.Context, id int64) (bool, error) {
	exec, err := conn(ctx, r.pool)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := exec.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sports WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

var _ repository.SportRepository = (*sportRepository)(nil)
