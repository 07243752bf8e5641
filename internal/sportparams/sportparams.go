// Package sportparams describes how each sport's free-form parameters are presented.
// It is consulted only when rendering; the stored parameter bags stay untyped.
package sportparams

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type Kind string

const (
	KindNumber Kind = "number"
	KindPace   Kind = "pace"
	KindTime   Kind = "time"
	KindEnum   Kind = "enum"
)

// Descriptor documents one parameter of a sport.
type Descriptor struct {
	Name        string
	Label       string
	Kind        Kind
	Unit        string
	Placeholder string
	Options     []string
	Min, Max    float64
}

func number(name, label, unit, placeholder string, min, max float64) Descriptor {
	return Descriptor{Name: name, Label: label, Kind: KindNumber, Unit: unit, Placeholder: placeholder, Min: min, Max: max}
}

var table = map[string][]Descriptor{
	"running": {
		number("distance", "Distance", "km", "10", 1, 200),
		{Name: "pace", Label: "Pace", Kind: KindPace, Unit: "min/km", Placeholder: "5:30"},
	},
	"road cycling": {
		number("distance", "Distance", "km", "50", 1, 200),
		number("speed", "Speed", "km/h", "30", 10, 60),
	},
	"mountain biking": {
		number("distance", "Distance", "km", "25", 1, 200),
		{Name: "time", Label: "Time", Kind: KindTime, Placeholder: "1:30h"},
		number("elevation", "Elevation gain", "m", "800", 0, 5000),
	},
	"pool swimming": {
		number("distance", "Distance", "m", "1500", 100, 10000),
		{Name: "pace", Label: "Pace", Kind: KindPace, Unit: "min/100m", Placeholder: "2:00"},
	},
	"open water swimming": {
		number("distance", "Distance", "m", "2000", 100, 20000),
		{Name: "pace", Label: "Pace", Kind: KindPace, Unit: "min/100m", Placeholder: "2:00"},
	},
	"inline skating": {
		number("distance", "Distance", "km", "15", 1, 100),
		{Name: "style", Label: "Style", Kind: KindEnum, Placeholder: "Choose a style", Options: []string{"recreational", "fast", "freestyle"}},
	},
	"diving": {
		number("depth", "Depth", "m", "30", 5, 100),
	},
	"tennis": {
		{Name: "level", Label: "NTRP level", Kind: KindEnum, Placeholder: "Choose a level",
			Options: []string{"1.0", "1.5", "2.0", "2.5", "3.0", "3.5", "4.0", "4.5", "5.0", "5.5", "6.0+"}},
	},
}

// For returns the descriptors of a sport, or nil for sports without a table entry.
func For(sport string) []Descriptor {
	return table[strings.ToLower(strings.TrimSpace(sport))]
}

func lookup(sport, name string) (Descriptor, bool) {
	for _, d := range For(sport) {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

var (
	paceRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	timeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})h?$`)
)

// PaceToSeconds parses "m:ss" ("5:30" is 330).
func PaceToSeconds(pace string) (int, bool) {
	m := paceRe.FindStringSubmatch(pace)
	if m == nil {
		return 0, false
	}
	mins, _ := strconv.Atoi(m[1])
	secs, _ := strconv.Atoi(m[2])
	return mins*60 + secs, true
}

// SecondsToPace renders seconds as "m:ss".
func SecondsToPace(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// TimeToMinutes parses "h:mm" with an optional trailing "h". Minutes must be below 60.
func TimeToMinutes(s string) (int, bool) {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if mins >= 60 {
		return 0, false
	}
	return hours*60 + mins, true
}

// MinutesToTime renders minutes as "h:mmh".
func MinutesToTime(total int) string {
	return fmt.Sprintf("%d:%02dh", total/60, total%60)
}

// FormatValue renders one parameter value with its unit. Unknown sports and keys fall back to the plain value.
func FormatValue(sport, name string, v any) string {
	d, ok := lookup(sport, name)
	if !ok {
		return plain(v)
	}
	var out string
	switch d.Kind {
	case KindPace:
		if n, isNum := asInt(v); isNum {
			out = SecondsToPace(n)
		} else {
			out = plain(v)
		}
	case KindTime:
		if n, isNum := asInt(v); isNum {
			out = MinutesToTime(n)
		} else if mins, ok := TimeToMinutes(plain(v)); ok {
			out = MinutesToTime(mins)
		} else {
			out = plain(v)
		}
	default:
		out = plain(v)
	}
	if d.Unit != "" {
		return out + " " + d.Unit
	}
	return out
}

// Line is one rendered parameter.
type Line struct {
	Label string
	Value string
}

// Format renders a parameter bag: known parameters in table order, then the rest sorted by key.
func Format(sport string, params map[string]any) []Line {
	out := make([]Line, 0, len(params))
	seen := make(map[string]bool, len(params))
	for _, d := range For(sport) {
		if v, ok := params[d.Name]; ok {
			out = append(out, Line{Label: d.Label, Value: FormatValue(sport, d.Name, v)})
			seen[d.Name] = true
		}
	}
	rest := make([]string, 0, len(params))
	for k := range params {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		out = append(out, Line{Label: k, Value: plain(params[k])})
	}
	return out
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	default:
		return 0, false
	}
}

func plain(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i := range t {
			parts[i] = plain(t[i])
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
