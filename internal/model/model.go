// Package model contains domain entities and DTOs used across layers.
package model

import "time"

// UnnamedUserDisplayName is shown when a matched user has neither a display name nor a username.
const UnnamedUserDisplayName = "Unnamed User"

// MissingProfileMessage is the guidance returned when the caller's profile cannot run matching.
const MissingProfileMessage = "Your profile must have a location and default range set to find matches"

// GeoPoint is a GeoJSON Point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type" validate:"eq=Point"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Longitude returns the first coordinate.
func (p GeoPoint) Longitude() float64 { return p.Coordinates[0] }

// Latitude returns the second coordinate.
func (p GeoPoint) Latitude() float64 { return p.Coordinates[1] }

// NewGeoPoint builds a GeoJSON point from longitude and latitude.
func NewGeoPoint(lon, lat float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: [2]float64{lon, lat}}
}

// Profile is the public profile of a user.
type Profile struct {
	ID             string            `json:"id"`
	Username       *string           `json:"username"`
	DisplayName    *string           `json:"display_name"`
	Location       *GeoPoint         `json:"location"`
	DefaultRangeKm *int              `json:"default_range_km"`
	SocialLinks    map[string]string `json:"social_links"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProfileUpdate carries the mutable profile fields; nil means "leave unchanged".
type ProfileUpdate struct {
	DisplayName    *string
	Location       *GeoPoint
	DefaultRangeKm *int
	SocialLinks    map[string]string
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.DisplayName == nil && u.Location == nil && u.DefaultRangeKm == nil && u.SocialLinks == nil
}

// Sport is an entry of the sports catalogue.
type Sport struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SportParameters is the free-form parameter bag attached to a user's sport.
// Values are primitives (number, string, bool) or arrays of strings / numbers.
type SportParameters map[string]any

// UserSport is a sport on a user's profile together with its settings.
type UserSport struct {
	SportID       int64           `json:"sport_id"`
	Name          string          `json:"name"`
	Parameters    SportParameters `json:"parameters"`
	CustomRangeKm *int            `json:"custom_range_km"`
}

// UserSportUpdate carries the mutable user sport fields.
// ClearCustomRange distinguishes an explicit null from an absent field.
type UserSportUpdate struct {
	Parameters       SportParameters
	CustomRangeKm    *int
	ClearCustomRange bool
}

// Empty reports whether the update changes nothing.
func (u UserSportUpdate) Empty() bool {
	return u.Parameters == nil && u.CustomRangeKm == nil && !u.ClearCustomRange
}

// MatchedSport is a sport entry of a matched user.
type MatchedSport struct {
	SportID    int64          `json:"sport_id"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// MatchedUser is one candidate returned by the matching function.
type MatchedUser struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	DisplayName string            `json:"display_name"`
	Email       string            `json:"email"`
	SocialLinks map[string]string `json:"social_links"`
	DistanceKm  float64           `json:"distance_km"`
	Sports      []MatchedSport    `json:"sports"`
}

// Window is a limit/offset slice of an ordered result set.
type Window struct {
	Limit  int `json:"limit" validate:"min=1,max=100"`
	Offset int `json:"offset" validate:"min=0"`
}

// Pagination describes the window a page was produced for and the full candidate count.
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// HasNextPage reports whether another window exists after this one.
func (p Pagination) HasNextPage() bool {
	return p.Offset+p.Limit < p.Total
}

// NextOffset is the offset of the window following this one.
func (p Pagination) NextOffset() int {
	return p.Offset + p.Limit
}

// MatchesPage is the paginated matching result.
type MatchesPage struct {
	Data       []MatchedUser `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
