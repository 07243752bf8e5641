package service

import (
	"context"

	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
	"github.com/rs/zerolog"
)

// SportsCache stores the sports catalogue between requests.
type SportsCache interface {
	GetSports(ctx context.Context) ([]model.Sport, bool, error)
	SetSports(ctx context.Context, sports []model.Sport) error
}

type sportService struct {
	repo  repository.SportRepository
	cache SportsCache
	log   zerolog.Logger
}

// NewSportService wires the catalogue use case. cache may be nil.
func NewSportService(repo repository.SportRepository, cache SportsCache, logger zerolog.Logger) SportService {
	l := logger.With().Str("module", "service").Str("component", "sport").Logger()
	return &sportService{repo: repo, cache: cache, log: l}
}

// ListSports reads through the cache; cache errors are logged and never fail the request.
func (s *sportService) ListSports(ctx context.Context) ([]model.Sport, error) {
	if s.cache != nil {
		sports, ok, err := s.cache.GetSports(ctx)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("sports cache read failed")
		case ok:
			return sports, nil
		}
	}

	sports, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list sports failed")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSports(ctx, sports); err != nil {
			s.log.Warn().Err(err).Msg("sports cache write failed")
		}
	}
	return sports, nil
}
