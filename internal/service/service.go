// Package service holds business logic orchestration across repositories and handlers.
// Only use-case coordination, validation and domain error shaping live here.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/buddyfinder-service/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// Domain errors surfaced by the use cases below.
var (
	ErrInvalidArgument           = errors.New("invalid argument")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrIncompleteProfile         = errors.New("profile is incomplete")
	ErrMalformedUpstreamResponse = errors.New("malformed upstream response")
	ErrProfileNotFound           = errors.New("profile not found")
	ErrSportNotFound             = errors.New("sport not found")
	ErrDuplicateSport            = errors.New("sport already added to profile")
	ErrUserSportNotFound         = errors.New("sport not found in profile")
)

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInput lets the transport layer report decoding failures in the same shape.
func NewInvalidInput(field, message string) error {
	return newInvalidInput([]FieldError{{Field: field, Message: message}})
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v *invalidInputError
	if errors.As(err, &v) {
		return v.Fields()
	}
	return nil
}

// MatchService runs the matching query for the caller.
type MatchService interface {
	GetMatches(ctx context.Context, userID string, w model.Window) (model.MatchesPage, error)
}

// ProfileService defines profile use cases.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (model.Profile, error)
	UpdateProfile(ctx context.Context, userID string, u model.ProfileUpdate) (model.Profile, error)
}

// SportService exposes the sports catalogue.
type SportService interface {
	ListSports(ctx context.Context) ([]model.Sport, error)
}

// UserSportService manages the sports attached to a profile.
type UserSportService interface {
	ListUserSports(ctx context.Context, userID string) ([]model.UserSport, error)
	AddUserSport(ctx context.Context, userID string, in model.UserSport) (model.UserSport, error)
	UpdateUserSport(ctx context.Context, userID string, sportID int64, u model.UserSportUpdate) (model.UserSport, error)
	RemoveUserSport(ctx context.Context, userID string, sportID int64) error
}
