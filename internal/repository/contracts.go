package repository

import (
	"context"

	"github.com/maxviazov/buddyfinder-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager runs fn inside one transaction. Repositories called with the ctx passed to fn join it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// ProfileRepository declares persistence operations for profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (model.Profile, error)
	// Update applies the non-nil fields and returns the stored profile.
	Update(ctx context.Context, id string, u model.ProfileUpdate) (model.Profile, error)
}

// SportRepository reads the sports catalogue.
type SportRepository interface {
	List(ctx context.Context) ([]model.Sport, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserSportRepository declares persistence operations for the sports attached to a profile.
type UserSportRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.UserSport, error)
	Exists(ctx context.Context, userID string, sportID int64) (bool, error)
	Create(ctx context.Context, userID string, s model.UserSport) (model.UserSport, error)
	Update(ctx context.Context, userID string, sportID int64, u model.UserSportUpdate) (model.UserSport, error)
	Delete(ctx context.Context, userID string, sportID int64) error
}

// MatchFunction invokes the database matching procedure.
// The result is returned undecoded: its shape is checked by the caller, not trusted here.
type MatchFunction interface {
	Call(ctx context.Context, userID string, w model.Window) ([]byte, error)
}
