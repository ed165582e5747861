package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undeconstructed/gotichu/tichu"
)

func TestEmit_checks(t *testing.T) {
	hand := tichu.UpdateHand{Hand: []tichu.Card{"a", "b"}}
	my := tichu.YourTurn{YourTurn: true}
	their := tichu.YourTurn{YourTurn: false}
	dragon := tichu.ChooseDragonRecipient{Recipients: []string{"Bob", "Dan"}}
	passing := tichu.StartPassing{Cards: passCards("c1", "c2"), Targets: []string{"Bob", "Dan"}}

	cases := []struct {
		name   string
		events []tichu.Event
		cmd    tichu.Command
		err    error
	}{
		{"play on my turn", []tichu.Event{hand, my}, tichu.PlayCards{Cards: []tichu.Card{"a"}}, nil},
		{"play on their turn", []tichu.Event{hand, their}, tichu.PlayCards{Cards: []tichu.Card{"a"}}, tichu.ErrNotYourTurn},
		{"play nothing", []tichu.Event{hand, my}, tichu.PlayCards{}, tichu.ErrNothingSelected},
		{"play unknown card", []tichu.Event{hand, my}, tichu.PlayCards{Cards: []tichu.Card{"z"}}, tichu.ErrNotInHand},
		{"move", []tichu.Event{my}, tichu.PlayMove{Move: "pair 8"}, nil},
		{"blank move", []tichu.Event{my}, tichu.PlayMove{Move: " "}, tichu.ErrEmptyMove},
		{"move when idle", nil, tichu.PlayMove{Move: "pair 8"}, tichu.ErrNotYourTurn},
		{"pass", []tichu.Event{my}, tichu.Pass{}, nil},
		{"pass in prompt", []tichu.Event{my, dragon}, tichu.Pass{}, tichu.ErrNotYourTurn},
		{"dragon", []tichu.Event{dragon}, tichu.DragonRecipientSelected{Recipient: "Bob"}, nil},
		{"dragon stranger", []tichu.Event{dragon}, tichu.DragonRecipientSelected{Recipient: "Eve"}, tichu.ErrInvalidRecipient},
		{"dragon unasked", nil, tichu.DragonRecipientSelected{Recipient: "Bob"}, tichu.ErrNotNow},
		{"wish unasked", []tichu.Event{my}, tichu.WishCard{Wish: "K"}, tichu.ErrNotNow},
		{"wish lowercase", []tichu.Event{tichu.AskWish{}}, tichu.WishCard{Wish: "k"}, tichu.ErrInvalidWish},
		{"grand unasked", nil, tichu.GrandTichuChoice{Choice: true}, tichu.ErrNotNow},
		{"tichu", []tichu.Event{their}, tichu.TichuCall{Choice: true}, nil},
		{"tichu in prompt", []tichu.Event{tichu.CallGrandTichu{}}, tichu.TichuCall{Choice: true}, tichu.ErrNotNow},
		{"tichu in round over", []tichu.Event{tichu.RoundOver{}}, tichu.TichuCall{Choice: true}, tichu.ErrNotNow},
		{"ready while playing", []tichu.Event{my}, tichu.ReadyForNextRound{}, tichu.ErrNotNow},
		{"pass cards unasked", nil, tichu.PassCards{}, tichu.ErrNotNow},
		{"pass cards none given", []tichu.Event{passing}, tichu.PassCards{Assignments: map[string]string{}}, tichu.ErrIncompleteAssignment},
		{"join", nil, tichu.Join{Name: "Ann"}, nil},
		{"join while playing", []tichu.Event{my}, tichu.Join{Name: "Ann"}, tichu.ErrNotNow},
		{"join bad team", nil, tichu.Join{Name: "Ann", Team: "C"}, tichu.ErrBadTeam},
	}

	for _, c := range cases {
		m, out, _ := newTestMachine()
		for _, ev := range c.events {
			m.Handle(ev)
		}

		err := m.emit.Emit(m, c.cmd)
		if c.err == nil {
			assert.NoError(t, err, c.name)
			require.Len(t, out.all(), 1, c.name)
			assert.Equal(t, c.cmd.CommandName(), out.last().name, c.name)
			assert.Equal(t, c.cmd, out.last().payload, c.name)
			continue
		}

		assert.True(t, errors.Is(err, c.err), "%s: %v", c.name, err)
		var verr *tichu.ValidationError
		if assert.True(t, errors.As(err, &verr), c.name) {
			assert.Equal(t, c.cmd.CommandName(), verr.Command, c.name)
		}
		assert.Empty(t, out.all(), c.name)
	}
}

func TestEmit_tichuOnlyBeforePlaying(t *testing.T) {
	m, out, _ := newTestMachine()
	m.Handle(tichu.UpdateHand{Hand: []tichu.Card{"a", "b"}})
	m.Handle(tichu.YourTurn{YourTurn: true})

	require.NoError(t, m.CallTichu())
	require.NoError(t, m.Toggle("a"))
	require.NoError(t, m.PlayCards())
	assert.Equal(t, sent{tichu.CmdPlayCard, tichu.PlayCards{Cards: []tichu.Card{"a"}}}, out.last())
	assert.Empty(t, m.Selection().Selected())

	err := m.CallTichu()
	assert.True(t, errors.Is(err, tichu.ErrAlreadyPlayed))
	assert.Len(t, out.all(), 2)

	// a new round allows it again
	m.Handle(tichu.RoundOver{})
	require.NoError(t, m.ReadyForNextRound())
	assert.NoError(t, m.CallTichu())
}

func TestEmit_passCardsForeignRecipient(t *testing.T) {
	m, out, _ := newTestMachine()
	m.Handle(tichu.StartPassing{Cards: passCards("c1"), Targets: []string{"Bob"}})
	require.NoError(t, m.Assign("Bob", "c1"))

	err := m.emit.Emit(m, tichu.PassCards{Assignments: map[string]string{"Bob": "c1", "Eve": "c2"}})
	assert.True(t, errors.Is(err, tichu.ErrInvalidAssignment))
	assert.Empty(t, out.all())
}

func TestEmit_playKeepsSelectionOnRefusal(t *testing.T) {
	m, out, sink := newTestMachine()
	m.Handle(tichu.UpdateHand{Hand: []tichu.Card{"a", "b"}})
	require.NoError(t, m.Toggle("b"))

	err := m.PlayCards()
	assert.True(t, errors.Is(err, tichu.ErrNotYourTurn))
	assert.Equal(t, []tichu.Card{"b"}, m.Selection().Selected())
	assert.Empty(t, out.all())
	assert.Equal(t, []string{"play_card: it's not your turn"}, sink.errors)
}
