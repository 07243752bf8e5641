package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
)

type matchFunction struct{ pool *pgxpool.Pool }

// NewMatchFunction wraps the get_matches_for_user stored procedure.
func NewMatchFunction(pool *pgxpool.Pool) repository.MatchFunction {
	return &matchFunction{pool: pool}
}

// Call returns the jsonb document exactly as the procedure produced it.
// Server errors are returned as *pgconn.PgError so the SQLSTATE stays inspectable.
func (m *matchFunction) Call(ctx context.Context, userID string, w model.Window) ([]byte, error) {
	exec, err := conn(ctx, m.pool)
	if err != nil {
		return nil, err
	}
	var raw []byte
	err = exec.QueryRow(ctx,
		`SELECT get_matches_for_user($1::uuid, $2, $3)`,
		userID, w.Limit, w.Offset,
	).Scan(&raw)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return raw, nil
}

var _ repository.MatchFunction = (*matchFunction)(nil)
