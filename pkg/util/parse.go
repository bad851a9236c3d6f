package util

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ParseTags splits a comma-separated string into trimmed, non-empty tags
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// First returns the first present, non-nil value among keys.
func First(obj map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// FirstString returns the first key holding a non-blank string or number.
func FirstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := AsString(obj[k]); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// AsString converts JSON scalars to a string. Whole floats print without a
// fractional part so numeric IDs stay stable.
func AsString(v any) (string, bool) {
	switch v.(type) {
	case nil, map[string]any, []any:
		return "", false
	}
	s, err := cast.ToStringE(v)
	return s, err == nil
}

// AsInt converts JSON numbers and numeric strings to an int.
func AsInt(v any) (int, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		v = s
	}
	n, err := cast.ToIntE(v)
	return n, err == nil
}

// unix timestamps above this are taken to be milliseconds
const millisThreshold = 1e11

// AsTime parses RFC 3339-ish strings and unix seconds or milliseconds.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if n, err := cast.ToFloat64E(s); err == nil {
			return unixTime(n), true
		}
		ts, err := cast.ToTimeE(s)
		if err != nil {
			return time.Time{}, false
		}
		return ts.UTC(), true
	case float64, int64, int:
		return unixTime(cast.ToFloat64(t)), true
	default:
		return time.Time{}, false
	}
}

func unixTime(n float64) time.Time {
	if n > millisThreshold {
		return time.UnixMilli(int64(n)).UTC()
	}
	return time.Unix(int64(n), 0).UTC()
}

// AsStringList accepts a list of strings, a list of {name}|{label}|{title}
// objects, or a comma-separated string. Order is kept and blanks dropped.
func AsStringList(v any) []string {
	switch t := v.(type) {
	case string:
		return ParseTags(t)
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			var s string
			switch e := item.(type) {
			case map[string]any:
				s = FirstString(e, "name", "label", "title", "value")
			default:
				s, _ = AsString(e)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return strings.TrimRightFunc(string(runes[:max-1]), isSpace) + "…"
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
