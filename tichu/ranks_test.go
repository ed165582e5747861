package tichu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWish(t *testing.T) {
	cases := map[string]string{
		"2":    "2",
		" 10 ": "10",
		"j":    "J",
		"q":    "Q",
		"A":    "A",
		"none": NoWish,
		"NONE": NoWish,
		"None": NoWish,
	}
	for in, want := range cases {
		got, err := ParseWish(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.True(t, ValidWish(got), in)
	}
}

func TestParseWish_invalid(t *testing.T) {
	for _, in := range []string{"z", "", "1", "11", "B", "Dragon", "10 J"} {
		_, err := ParseWish(in)
		assert.True(t, errors.Is(err, ErrInvalidWish), in)
	}
	assert.False(t, ValidWish("j"))
	assert.False(t, ValidWish("NONE"))
}

func TestParseTeam(t *testing.T) {
	team, err := ParseTeam("a")
	assert.NoError(t, err)
	assert.Equal(t, TeamA, team)

	team, err = ParseTeam("")
	assert.NoError(t, err)
	assert.Equal(t, "", team)

	_, err = ParseTeam("C")
	assert.Equal(t, ErrBadTeam, err)
}
