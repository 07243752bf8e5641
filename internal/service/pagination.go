package service

import (
	"math"
	"strings"

	"github.com/maxviazov/buddyfinder-service/internal/model"
)

const (
	DefaultLimit  = 20
	DefaultOffset = 0
)

// ParseWindow resolves raw query values into a validated window.
// Unparseable or empty input falls back to the default; parsed values outside the allowed range are rejected.
func ParseWindow(limitRaw, offsetRaw string) (model.Window, error) {
	w := model.Window{Limit: DefaultLimit, Offset: DefaultOffset}
	if n, ok := parseIntPrefix(limitRaw); ok {
		w.Limit = n
	}
	if n, ok := parseIntPrefix(offsetRaw); ok {
		w.Offset = n
	}
	if err := ValidateWindow(w); err != nil {
		return model.Window{}, err
	}
	return w, nil
}

// ValidateWindow checks limit in [1,100] and offset >= 0.
func ValidateWindow(w model.Window) error {
	return validateStruct(w)
}

// parseIntPrefix reads an optionally signed base-10 integer from the start of s,
// ignoring surrounding whitespace and anything after the digits ("10.5" is 10).
// Magnitudes beyond int32 are clamped so they still fail the range check.
func parseIntPrefix(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	n, digits := 0, 0
	for ; digits < len(s); digits++ {
		c := s[digits]
		if c < '0' || c > '9' {
			break
		}
		if n < math.MaxInt32 {
			n = n*10 + int(c-'0')
		}
	}
	if digits == 0 {
		return 0, false
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	if neg {
		n = -n
	}
	return n, true
}

// ParseSportID reads a path parameter the same tolerant way as the window values ("3abc" is 3)
// and requires a positive result.
func ParseSportID(raw string) (int64, error) {
	n, ok := parseIntPrefix(raw)
	if !ok || n < 1 {
		return 0, NewInvalidInput("sport_id", "must be a positive integer")
	}
	return int64(n), nil
}
