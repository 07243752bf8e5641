package service

import (
	"context"
	"errors"

	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
	"github.com/rs/zerolog"
)

type userSportService struct {
	tx         repository.TxManager
	sports     repository.SportRepository
	userSports repository.UserSportRepository
	log        zerolog.Logger
}

func NewUserSportService(tx repository.TxManager, sports repository.SportRepository, userSports repository.UserSportRepository, logger zerolog.Logger) UserSportService {
	l := logger.With().Str("module", "service").Str("component", "user_sport").Logger()
	return &userSportService{tx: tx, sports: sports, userSports: userSports, log: l}
}

func (s *userSportService) ListUserSports(ctx context.Context, userID string) ([]model.UserSport, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	out, err := s.userSports.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("list user sports failed")
		return nil, err
	}
	return out, nil
}

// AddUserSport checks the catalogue and the existing pair inside one transaction before inserting.
func (s *userSportService) AddUserSport(ctx context.Context, userID string, in model.UserSport) (model.UserSport, error) {
	if err := checkUserID(userID); err != nil {
		return model.UserSport{}, err
	}

	var ferrs []FieldError
	if in.SportID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "sport_id", Message: "must be > 0"})
	}
	ferrs = checkParameters(in.Parameters, ferrs)
	ferrs = checkRange("custom_range_km", in.CustomRangeKm, ferrs)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("user_id", userID).Interface("field_errors", ferrs).Msg("user sport validation failed")
		return model.UserSport{}, err
	}

	var out model.UserSport
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.sports.Exists(ctx, in.SportID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSportNotFound
		}
		dup, err := s.userSports.Exists(ctx, userID, in.SportID)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateSport
		}
		out, err = s.userSports.Create(ctx, userID, in)
		return err
	})
	switch {
	case errors.Is(err, repository.ErrAlreadyExists):
		return model.UserSport{}, ErrDuplicateSport
	case errors.Is(err, repository.ErrConflict):
		return model.UserSport{}, ErrSportNotFound
	case errors.Is(err, ErrSportNotFound), errors.Is(err, ErrDuplicateSport):
		return model.UserSport{}, err
	case err != nil:
		s.log.Error().Err(err).Str("user_id", userID).Int64("sport_id", in.SportID).Msg("add user sport failed")
		return model.UserSport{}, err
	}
	s.log.Info().Str("user_id", userID).Int64("sport_id", out.SportID).Msg("user sport added")
	return out, nil
}

func (s *userSportService) UpdateUserSport(ctx context.Context, userID string, sportID int64, u model.UserSportUpdate) (model.UserSport, error) {
	if err := checkUserID(userID); err != nil {
		return model.UserSport{}, err
	}

	var ferrs []FieldError
	if sportID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "sport_id", Message: "must be > 0"})
	}
	if u.Empty() {
		ferrs = append(ferrs, FieldError{Field: "body", Message: "at least one field must be provided"})
	}
	if u.Parameters != nil {
		ferrs = checkParameters(u.Parameters, ferrs)
	}
	if !u.ClearCustomRange {
		ferrs = checkRange("custom_range_km", u.CustomRangeKm, ferrs)
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.UserSport{}, err
	}

	out, err := s.userSports.Update(ctx, userID, sportID, u)
	if errors.Is(err, repository.ErrNotFound) {
		return model.UserSport{}, ErrUserSportNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Int64("sport_id", sportID).Msg("update user sport failed")
		return model.UserSport{}, err
	}
	return out, nil
}

func (s *userSportService) RemoveUserSport(ctx context.Context, userID string, sportID int64) error {
	if err := checkUserID(userID); err != nil {
		return err
	}
	if sportID <= 0 {
		return newInvalidInput([]FieldError{{Field: "sport_id", Message: "must be > 0"}})
	}
	err := s.userSports.Delete(ctx, userID, sportID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserSportNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Int64("sport_id", sportID).Msg("remove user sport failed")
		return err
	}
	s.log.Info().Str("user_id", userID).Int64("sport_id", sportID).Msg("user sport removed")
	return nil
}
