package prompter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestString(t *testing.T) {
	p, out := newPrompter("  admin@impact.org \n")
	got, err := p.String("Email: ")
	require.NoError(t, err)
	assert.Equal(t, "admin@impact.org", got)
	assert.Equal(t, "Email: ", out.String())
}

func TestStringWithoutTrailingNewline(t *testing.T) {
	p, _ := newPrompter("last")
	got, err := p.String("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", got)
}

func TestPasswordFromPipe(t *testing.T) {
	p, _ := newPrompter("s3cret\n")
	got, err := p.Password("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
	}
	for _, tt := range tests {
		p, _ := newPrompter(tt.input)
		got, err := p.Confirm("Approve?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestSelect(t *testing.T) {
	p, out := newPrompter("2\n")
	i, err := p.Select("Role", []string{"user", "moderator", "admin"})
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Contains(t, out.String(), "2) moderator")

	p, _ = newPrompter("9\n")
	_, err = p.Select("Role", []string{"user"})
	assert.Error(t, err)
}

func TestMultiline(t *testing.T) {
	p, _ := newPrompter("Duplicate of an\nearlier post\n\nignored\n")
	got, err := p.Multiline("Reason", 10)
	require.NoError(t, err)
	assert.Equal(t, "Duplicate of an\nearlier post", got)
}

func TestMultilineEmptyIsCancelled(t *testing.T) {
	p, _ := newPrompter("\n")
	_, err := p.Multiline("Reason", 10)
	assert.ErrorIs(t, err, ErrCancelled)

	p, _ = newPrompter("")
	_, err = p.Multiline("Reason", 10)
	assert.ErrorIs(t, err, ErrCancelled)
}
