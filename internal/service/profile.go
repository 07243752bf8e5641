package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
	"github.com/rs/zerolog"
)

type profileService struct {
	repo repository.ProfileRepository
	log  zerolog.Logger
}

func NewProfileService(repo repository.ProfileRepository, logger zerolog.Logger) ProfileService {
	l := logger.With().Str("module", "service").Str("component", "profile").Logger()
	return &profileService{repo: repo, log: l}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (model.Profile, error) {
	if err := checkUserID(userID); err != nil {
		return model.Profile{}, err
	}
	p, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("get profile failed")
	}
	return p, err
}

// UpdateProfile applies a partial update. An update with no fields returns the stored profile.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, u model.ProfileUpdate) (model.Profile, error) {
	if err := checkUserID(userID); err != nil {
		return model.Profile{}, err
	}

	var ferrs []FieldError
	if u.DisplayName != nil {
		if n := utf8.RuneCountInString(*u.DisplayName); n < 3 || n > 50 {
			ferrs = append(ferrs, FieldError{Field: "display_name", Message: "length must be between 3 and 50"})
		}
	}
	ferrs = checkLocation(u.Location, ferrs)
	ferrs = checkRange("default_range_km", u.DefaultRangeKm, ferrs)
	ferrs = checkSocialLinks(u.SocialLinks, ferrs)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("user_id", userID).Interface("field_errors", ferrs).Msg("profile validation failed")
		return model.Profile{}, err
	}

	if u.Empty() {
		return s.GetProfile(ctx, userID)
	}

	out, err := s.repo.Update(ctx, userID, u)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("update profile failed")
		return model.Profile{}, err
	}
	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return out, nil
}
