package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_HasNextPage(t *testing.T) {
	cases := []struct {
		name string
		p    Pagination
		want bool
	}{
		{"first of many", Pagination{Total: 50, Limit: 20, Offset: 0}, true},
		{"last partial page", Pagination{Total: 22, Limit: 20, Offset: 20}, false},
		{"exact boundary", Pagination{Total: 40, Limit: 20, Offset: 20}, false},
		{"one left", Pagination{Total: 41, Limit: 20, Offset: 20}, true},
		{"empty", Pagination{Total: 0, Limit: 20, Offset: 0}, false},
		{"past the end", Pagination{Total: 3, Limit: 20, Offset: 40}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.HasNextPage())
			assert.Equal(t, tc.p.Offset+tc.p.Limit, tc.p.NextOffset())
		})
	}
}

func TestUpdates_Empty(t *testing.T) {
	rng := 5
	assert.True(t, ProfileUpdate{}.Empty())
	assert.False(t, ProfileUpdate{DefaultRangeKm: &rng}.Empty())
	assert.False(t, ProfileUpdate{SocialLinks: map[string]string{}}.Empty())

	assert.True(t, UserSportUpdate{}.Empty())
	assert.False(t, UserSportUpdate{ClearCustomRange: true}.Empty())
	assert.False(t, UserSportUpdate{Parameters: SportParameters{"a": 1}}.Empty())
}

func TestGeoPoint(t *testing.T) {
	p := NewGeoPoint(21.01, 52.23)
	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, 21.01, p.Longitude())
	assert.Equal(t, 52.23, p.Latitude())
}
