package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/maxviazov/buddyfinder-service/internal/matching"
	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
	"github.com/rs/zerolog"
)

// matchService is the gateway in front of the matching function: it owns error
// translation and shape checks, never the ranking itself.
type matchService struct {
	fn  repository.MatchFunction
	log zerolog.Logger
}

func NewMatchService(fn repository.MatchFunction, logger zerolog.Logger) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	return &matchService{fn: fn, log: l}
}

func (s *matchService) GetMatches(ctx context.Context, userID string, w model.Window) (model.MatchesPage, error) {
	if err := checkUserID(userID); err != nil {
		return model.MatchesPage{}, err
	}
	start := time.Now()

	raw, err := s.fn.Call(ctx, userID, w)
	if err != nil {
		if repository.SQLState(err) == repository.CodeProfileIncomplete {
			s.log.Debug().Str("user_id", userID).Msg("matching skipped: profile incomplete")
			return model.MatchesPage{}, ErrIncompleteProfile
		}
		s.log.Error().Err(err).Str("user_id", userID).Int("limit", w.Limit).Int("offset", w.Offset).Msg("matching function failed")
		return model.MatchesPage{}, err
	}

	total, records, err := decodeMatches(raw)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("matching function returned an unexpected payload")
		return model.MatchesPage{}, err
	}
	if len(records) > w.Limit {
		s.log.Warn().Int("returned", len(records)).Int("limit", w.Limit).Msg("matching function overran the window; truncating")
		records = records[:w.Limit]
	}

	data := make([]model.MatchedUser, 0, len(records))
	for _, r := range records {
		data = append(data, matching.MapRecord(r))
	}

	s.log.Debug().
		Str("user_id", userID).
		Int("total", total).
		Int("returned", len(data)).
		Dur("took", time.Since(start)).
		Msg("matches fetched")

	return model.MatchesPage{
		Data:       data,
		Pagination: model.Pagination{Total: total, Limit: w.Limit, Offset: w.Offset},
	}, nil
}

// decodeMatches requires an integral, non-negative total_count and a matched_users array of objects.
func decodeMatches(raw []byte) (int, []map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil || doc == nil {
		return 0, nil, fmt.Errorf("%w: not a JSON object", ErrMalformedUpstreamResponse)
	}

	n, ok := doc["total_count"].(json.Number)
	if !ok {
		return 0, nil, fmt.Errorf("%w: total_count is not a number", ErrMalformedUpstreamResponse)
	}
	total, err := n.Int64()
	if err != nil || total < 0 {
		return 0, nil, fmt.Errorf("%w: total_count %q is not a count", ErrMalformedUpstreamResponse, n.String())
	}

	users, ok := doc["matched_users"].([]any)
	if !ok {
		return 0, nil, fmt.Errorf("%w: matched_users is not an array", ErrMalformedUpstreamResponse)
	}
	records := make([]map[string]any, 0, len(users))
	for i, u := range users {
		rec, ok := u.(map[string]any)
		if !ok {
			return 0, nil, fmt.Errorf("%w: matched_users[%d] is not an object", ErrMalformedUpstreamResponse, i)
		}
		records = append(records, rec)
	}
	return int(total), records, nil
}
