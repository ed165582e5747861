package client

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undeconstructed/gotichu/tichu"
)

func passCards(ids ...string) []tichu.PassCard {
	var out []tichu.PassCard
	for _, id := range ids {
		out = append(out, tichu.PassCard{ID: id, Image: "/static/cards/" + id + ".png"})
	}
	return out
}

func TestToggle(t *testing.T) {
	s := NewSelection()
	s.ReplaceHand([]tichu.Card{"a", "b", "c"})

	require.NoError(t, s.Toggle("a"))
	require.NoError(t, s.Toggle("c"))
	assert.Equal(t, []tichu.Card{"a", "c"}, s.Selected())

	require.NoError(t, s.Toggle("a"))
	assert.Equal(t, []tichu.Card{"c"}, s.Selected())

	err := s.Toggle("x")
	assert.True(t, errors.Is(err, tichu.ErrNotInHand))
	assert.Equal(t, []tichu.Card{"c"}, s.Selected())
}

func TestReplaceHand_clears(t *testing.T) {
	s := NewSelection()
	s.ReplaceHand([]tichu.Card{"a", "b"})
	require.NoError(t, s.Toggle("a"))
	s.StartExchange(passCards("c1"), []string{"Bob"})
	require.NoError(t, s.Assign("Bob", "c1"))

	hand := []tichu.Card{"x"}
	s.ReplaceHand(hand)
	hand[0] = "changed"

	assert.Equal(t, []tichu.Card{"x"}, s.Hand())
	assert.Empty(t, s.Selected())
	assert.Empty(t, s.Pool())
	assert.Empty(t, s.Assignments())
}

func TestAssign_complete(t *testing.T) {
	s := NewSelection()
	s.StartExchange(passCards("c1"), []string{"Bob"})
	assert.False(t, s.IsComplete([]string{"Bob"}))

	require.NoError(t, s.Assign("Bob", "c1"))
	assert.True(t, s.IsComplete([]string{"Bob"}))
	assert.Equal(t, map[string]string{"Bob": "c1"}, s.Assignments())
}

func TestAssign_replaces(t *testing.T) {
	s := NewSelection()
	s.StartExchange(passCards("c1", "c2"), []string{"Bob", "Cy"})

	require.NoError(t, s.Assign("Bob", "c1"))
	require.NoError(t, s.Assign("Bob", "c2"))

	assert.Equal(t, passCards("c1"), s.Pool())
	assert.Equal(t, map[string]string{"Bob": "c2"}, s.Assignments())
}

func TestAssign_invalid(t *testing.T) {
	s := NewSelection()
	s.StartExchange(passCards("c1", "c2"), []string{"Bob", "Cy"})
	require.NoError(t, s.Assign("Bob", "c1"))

	// already given to Bob
	assert.True(t, errors.Is(s.Assign("Cy", "c1"), tichu.ErrInvalidAssignment))
	// never dealt
	assert.True(t, errors.Is(s.Assign("Cy", "c9"), tichu.ErrInvalidAssignment))
	// not a target
	assert.True(t, errors.Is(s.Assign("Zed", "c2"), tichu.ErrInvalidAssignment))

	assert.Equal(t, map[string]string{"Bob": "c1"}, s.Assignments())
	assert.Equal(t, passCards("c2"), s.Pool())
}

func TestUnassign(t *testing.T) {
	s := NewSelection()
	s.StartExchange(passCards("c1", "c2"), []string{"Bob"})
	require.NoError(t, s.Assign("Bob", "c2"))
	require.NoError(t, s.Unassign("Bob"))

	assert.Empty(t, s.Assignments())
	assert.ElementsMatch(t, passCards("c1", "c2"), s.Pool())
	assert.True(t, errors.Is(s.Unassign("Bob"), tichu.ErrInvalidAssignment))
}

func exchangeIDs(s *Selection) []string {
	var ids []string
	for _, c := range s.Pool() {
		ids = append(ids, c.ID)
	}
	for _, id := range s.Assignments() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func TestExchange_conserved(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	cards := passCards("c1", "c2", "c3", "c4", "c5", "c5")
	targets := []string{"Ann", "Bob", "Cy"}

	for round := 0; round < 50; round++ {
		s := NewSelection()
		s.StartExchange(cards, targets)
		want := exchangeIDs(s)
		require.Len(t, want, len(cards))

		for step := 0; step < 40; step++ {
			r := targets[rnd.Intn(len(targets))]
			if rnd.Intn(4) == 0 {
				_ = s.Unassign(r)
			} else {
				_ = s.Assign(r, cards[rnd.Intn(len(cards))].ID)
			}
			require.Equal(t, want, exchangeIDs(s), "round %d step %d", round, step)
			assert.LessOrEqual(t, len(s.Assignments()), len(targets))
		}
	}
}
