package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAsString(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{"abc", "abc", true},
		{float64(101), "101", true},
		{1.5, "1.5", true},
		{7, "7", true},
		{true, "true", true},
		{float64(1736501400000), "1736501400000", true},
		{nil, "", false},
		{[]any{"a"}, "", false},
		{map[string]any{}, "", false},
	}
	for _, tt := range tests {
		got, ok := AsString(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ok, ok)
	}
}

func TestAsInt(t *testing.T) {
	n, ok := AsInt(" 42 ")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = AsInt(float64(9))
	assert.True(t, ok)
	assert.Equal(t, 9, n)

	_, ok = AsInt("many")
	assert.False(t, ok)
	_, ok = AsInt("")
	assert.False(t, ok)
	_, ok = AsInt(true)
	assert.False(t, ok)
}

func TestAsTime(t *testing.T) {
	want := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)

	for _, in := range []any{
		"2025-01-10T09:30:00Z",
		"2025-01-10T11:30:00+02:00",
		"2025-01-10 09:30:00",
		float64(want.Unix()),
		float64(want.UnixMilli()),
		"1736501400",
	} {
		got, ok := AsTime(in)
		assert.True(t, ok, "input %v", in)
		assert.True(t, want.Equal(got), "input %v gave %v", in, got)
	}

	_, ok := AsTime("yesterday")
	assert.False(t, ok)
	_, ok = AsTime("")
	assert.False(t, ok)
}

func TestAsStringList(t *testing.T) {
	assert.Equal(t, []string{"rust", "infra"}, AsStringList([]any{"rust", " ", "infra"}))
	assert.Equal(t, []string{"a", "b"}, AsStringList([]any{map[string]any{"name": "a"}, map[string]any{"label": "b"}}))
	assert.Equal(t, []string{"x", "y"}, AsStringList("x, ,y"))
	assert.Equal(t, []string{}, AsStringList(nil))
}

func TestFirstString(t *testing.T) {
	obj := map[string]any{"title": "  ", "name": "Named", "id": float64(3)}
	assert.Equal(t, "Named", FirstString(obj, "title", "name"))
	assert.Equal(t, "3", FirstString(obj, "id"))
	assert.Equal(t, "", FirstString(obj, "missing"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "ab…", Truncate("ab cdef", 4))
	assert.Equal(t, "héll…", Truncate("héllo wörld", 5))
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{}, ParseTags("  "))
	assert.Equal(t, []string{"one", "two"}, ParseTags("one,two,"))
}
