package client

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/undeconstructed/gotichu/tichu"
)

// Sender is the outbound half of a channel.
type Sender interface {
	Send(name string, payload interface{})
}

// Emitter checks commands against the local state before they go out.
// It knows nothing about the rules of the game, only about what makes no
// sense to send.
type Emitter struct {
	out Sender
	log zerolog.Logger
}

func NewEmitter(out Sender) *Emitter {
	log := log.With().Str("component", "emitter").Logger()
	return &Emitter{out: out, log: log}
}

// Emit sends a command if it passes the checks. Otherwise it returns a
// tichu.ValidationError and sends nothing.
func (e *Emitter) Emit(m *Machine, cmd tichu.Command) error {
	if err := e.check(m, cmd); err != nil {
		return tichu.Refuse(cmd, err)
	}
	e.out.Send(cmd.CommandName(), cmd)
	e.log.Debug().Str("command", cmd.CommandName()).Msg("emitted")
	return nil
}

func (e *Emitter) check(m *Machine, cmd tichu.Command) error {
	switch c := cmd.(type) {
	case tichu.Join:
		if m.mode != Idle {
			return tichu.ErrNotNow
		}
		if m.joined {
			return tichu.ErrAlreadyJoined
		}
		if strings.TrimSpace(c.Name) == "" {
			return tichu.ErrBadName
		}
		if c.Team != "" && c.Team != tichu.TeamA && c.Team != tichu.TeamB {
			return tichu.ErrBadTeam
		}
	case tichu.PlayCards:
		if m.mode != MyTurn {
			return tichu.ErrNotYourTurn
		}
		if len(c.Cards) == 0 {
			return tichu.ErrNothingSelected
		}
		hand := m.sel.Hand()
		for _, card := range c.Cards {
			if !tichu.Contains(hand, card) {
				return tichu.ErrNotInHand
			}
		}
	case tichu.PlayMove:
		if m.mode != MyTurn {
			return tichu.ErrNotYourTurn
		}
		if strings.TrimSpace(c.Move) == "" {
			return tichu.ErrEmptyMove
		}
	case tichu.Pass:
		if m.mode != MyTurn {
			return tichu.ErrNotYourTurn
		}
	case tichu.DragonRecipientSelected:
		if m.mode != AwaitingDragonRecipient {
			return tichu.ErrNotNow
		}
		if !stringListContains(m.dragonRecipients, c.Recipient) {
			return tichu.ErrInvalidRecipient
		}
	case tichu.WishCard:
		if m.mode != AwaitingWish {
			return tichu.ErrNotNow
		}
		if !tichu.ValidWish(c.Wish) {
			return tichu.ErrInvalidWish
		}
	case tichu.GrandTichuChoice:
		if m.mode != AwaitingGrandTichuChoice {
			return tichu.ErrNotNow
		}
	case tichu.TichuCall:
		if m.mode.Prompt() || m.mode == RoundOver {
			return tichu.ErrNotNow
		}
		if m.played {
			return tichu.ErrAlreadyPlayed
		}
	case tichu.ReadyForNextRound:
		if m.mode != RoundOver {
			return tichu.ErrNotNow
		}
	case tichu.PassCards:
		if m.mode != PassingPhase {
			return tichu.ErrNotNow
		}
		targets := m.sel.Targets()
		if len(targets) == 0 || !m.sel.IsComplete(targets) {
			return tichu.ErrIncompleteAssignment
		}
		for r := range c.Assignments {
			if !stringListContains(targets, r) {
				return tichu.ErrInvalidAssignment
			}
		}
	default:
		return tichu.ErrNotNow
	}
	return nil
}
