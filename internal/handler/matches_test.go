package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches_UnauthorizedBeforeValidation(t *testing.T) {
	f := newFixture(stubPinger{})
	w := f.do(http.MethodGet, "/api/v1/matches?limit=0&offset=-1", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, w).Error.Code)
	assert.Zero(t, f.matches.calls)
}

func TestMatches_WindowResolution(t *testing.T) {
	cases := []struct {
		query string
		want  model.Window
	}{
		{"", model.Window{Limit: 20, Offset: 0}},
		{"?limit=abc&offset=", model.Window{Limit: 20, Offset: 0}},
		{"?limit=10.5&offset=20", model.Window{Limit: 10, Offset: 20}},
		{"?limit=5&limit=500&offset=1&offset=-1", model.Window{Limit: 5, Offset: 1}},
		{"?limit=%20%207%20", model.Window{Limit: 7, Offset: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			f := newFixture(stubPinger{})
			f.matches.page = model.MatchesPage{Data: []model.MatchedUser{}, Pagination: model.Pagination{Limit: tc.want.Limit, Offset: tc.want.Offset}}
			w := f.do(http.MethodGet, "/api/v1/matches"+tc.query, goodToken, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tc.want, f.matches.window)
			assert.Equal(t, callerID, f.matches.userID)
		})
	}
}

func TestMatches_OutOfRange(t *testing.T) {
	cases := map[string]string{
		"?limit=0":    "limit",
		"?limit=101":  "limit",
		"?offset=-1":  "offset",
		"?limit=-20":  "limit",
		"?offset=-5x": "offset",
	}
	for query, field := range cases {
		t.Run(query, func(t *testing.T) {
			f := newFixture(stubPinger{})
			w := f.do(http.MethodGet, "/api/v1/matches"+query, goodToken, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)
			env := decodeError(t, w)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
			var fields []service.FieldError
			require.NoError(t, json.Unmarshal(env.Error.Details, &fields))
			require.Len(t, fields, 1)
			assert.Equal(t, field, fields[0].Field)
			assert.Zero(t, f.matches.calls)
		})
	}
}

func TestMatches_Success(t *testing.T) {
	f := newFixture(stubPinger{})
	f.matches.page = model.MatchesPage{
		Data: []model.MatchedUser{{
			ID: "u1", Username: "ola", DisplayName: "Ola", Email: "ola@example.com",
			SocialLinks: map[string]string{}, DistanceKm: 1.2,
			Sports: []model.MatchedSport{{SportID: 1, Name: "running", Parameters: map[string]any{}}},
		}},
		Pagination: model.Pagination{Total: 1, Limit: 20, Offset: 0},
	}

	w := f.do(http.MethodGet, "/api/v1/matches?limit=20&offset=0", goodToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"data": [{
			"id": "u1", "username": "ola", "display_name": "Ola", "email": "ola@example.com",
			"social_links": {}, "distance_km": 1.2,
			"sports": [{"sport_id": 1, "name": "running", "parameters": {}}]
		}],
		"pagination": {"total": 1, "limit": 20, "offset": 0}
	}`, w.Body.String())
}

func TestMatches_IncompleteProfile(t *testing.T) {
	f := newFixture(stubPinger{})
	f.matches.err = service.ErrIncompleteProfile

	w := f.do(http.MethodGet, "/api/v1/matches", goodToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeError(t, w)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.JSONEq(t, `"PROFILE_INCOMPLETE"`, string(env.Error.Details))
	assert.Equal(t, model.MissingProfileMessage, env.Error.Message)
}

func TestMatches_UpstreamFailures(t *testing.T) {
	for _, err := range []error{service.ErrMalformedUpstreamResponse, errors.New("connection refused")} {
		f := newFixture(stubPinger{})
		f.matches.err = err
		w := f.do(http.MethodGet, "/api/v1/matches", goodToken, nil)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, w).Error.Code)
	}
}
