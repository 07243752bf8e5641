// Package matching turns the raw documents produced by the matching function into API records.
package matching

import (
	"encoding/json"
	"math"

	"github.com/maxviazov/buddyfinder-service/internal/model"
)

// MapRecord converts one decoded matched_users element. It never fails: missing or
// mistyped fields fall back to zero values, and non-object bags become empty maps.
func MapRecord(raw map[string]any) model.MatchedUser {
	username := str(raw["username"])
	out := model.MatchedUser{
		ID:          str(raw["id"]),
		Username:    username,
		DisplayName: DisplayName(str(raw["display_name"]), username),
		Email:       str(raw["email"]),
		SocialLinks: stringMap(raw["social_links"]),
		DistanceKm:  math.Max(0, num(raw["distance_km"])),
		Sports:      []model.MatchedSport{},
	}
	if sports, ok := raw["sports"].([]any); ok {
		for _, s := range sports {
			entry, ok := s.(map[string]any)
			if !ok {
				continue
			}
			out.Sports = append(out.Sports, model.MatchedSport{
				SportID:    int64(num(entry["sport_id"])),
				Name:       str(entry["name"]),
				Parameters: object(entry["parameters"]),
			})
		}
	}
	return out
}

// DisplayName picks the display name, then the username, then model.UnnamedUserDisplayName.
func DisplayName(displayName, username string) string {
	switch {
	case displayName != "":
		return displayName
	case username != "":
		return username
	default:
		return model.UnnamedUserDisplayName
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case json.Number:
		f, _ := t.Float64()
		return f
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return 0
	}
}

// object returns v when it is a JSON object, normalizing json.Number values; anything else is {}.
func object(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, val := range m {
		out[k] = normalize(val)
	}
	return out
}

func stringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		if s, ok := val.(string); ok {
			out[k] = s
		}
	}
	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		return num(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalize(t[i])
		}
		return out
	default:
		return v
	}
}
