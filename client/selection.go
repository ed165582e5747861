package client

import (
	"github.com/undeconstructed/gotichu/tichu"
)

// Selection holds the hand, the cards picked for the next play and, during
// the exchange, which card goes to whom.
//
// The exchange cards are always either in the pool or assigned, never both
// and never lost: pool + assigned is the exchange hand the server sent.
type Selection struct {
	hand     []tichu.Card
	selected []tichu.Card

	exchange []tichu.PassCard
	pool     []tichu.PassCard
	targets  []string
	assigned map[string]tichu.PassCard
}

func NewSelection() *Selection {
	return &Selection{assigned: map[string]tichu.PassCard{}}
}

// Toggle selects a card from the hand, or unselects it if it was selected.
func (s *Selection) Toggle(c tichu.Card) error {
	if !tichu.Contains(s.hand, c) {
		return tichu.ErrNotInHand
	}
	if out, changed := cardListWithout(s.selected, c); changed {
		s.selected = out
		return nil
	}
	s.selected = append(s.selected, c)
	return nil
}

// ReplaceHand takes a whole new hand and forgets every selection.
func (s *Selection) ReplaceHand(hand []tichu.Card) {
	s.hand = append([]tichu.Card(nil), hand...)
	s.selected = nil
	s.clearExchange()
}

// ClearSelection forgets the cards picked for play.
func (s *Selection) ClearSelection() {
	s.selected = nil
}

// StartExchange sets up a new exchange. Nothing is assigned.
func (s *Selection) StartExchange(cards []tichu.PassCard, targets []string) {
	s.exchange = append([]tichu.PassCard(nil), cards...)
	s.pool = append([]tichu.PassCard(nil), cards...)
	s.targets = append([]string(nil), targets...)
	s.assigned = map[string]tichu.PassCard{}
}

func (s *Selection) clearExchange() {
	s.exchange = nil
	s.pool = nil
	s.targets = nil
	s.assigned = map[string]tichu.PassCard{}
}

// Assign gives a card from the pool to a target. Whatever the target had
// before goes back into the pool.
func (s *Selection) Assign(recipient string, cardID string) error {
	if !stringListContains(s.targets, recipient) {
		return tichu.ErrInvalidAssignment
	}
	i := passCardIndex(s.pool, cardID)
	if i < 0 {
		return tichu.ErrInvalidAssignment
	}

	card := s.pool[i]
	s.pool = append(s.pool[:i:i], s.pool[i+1:]...)

	if old, ok := s.assigned[recipient]; ok {
		s.pool = append(s.pool, old)
	}
	s.assigned[recipient] = card
	return nil
}

// Unassign puts a target's card back into the pool.
func (s *Selection) Unassign(recipient string) error {
	old, ok := s.assigned[recipient]
	if !ok {
		return tichu.ErrInvalidAssignment
	}
	delete(s.assigned, recipient)
	s.pool = append(s.pool, old)
	return nil
}

// IsComplete says if every required recipient has a card.
func (s *Selection) IsComplete(required []string) bool {
	for _, r := range required {
		if _, ok := s.assigned[r]; !ok {
			return false
		}
	}
	return true
}

func (s *Selection) Hand() []tichu.Card {
	return append([]tichu.Card(nil), s.hand...)
}

func (s *Selection) Selected() []tichu.Card {
	return append([]tichu.Card(nil), s.selected...)
}

func (s *Selection) Pool() []tichu.PassCard {
	return append([]tichu.PassCard(nil), s.pool...)
}

func (s *Selection) Targets() []string {
	return append([]string(nil), s.targets...)
}

// Exchange is the exchange hand as the server sent it.
func (s *Selection) Exchange() []tichu.PassCard {
	return append([]tichu.PassCard(nil), s.exchange...)
}

// Assignments is recipient to card id.
func (s *Selection) Assignments() map[string]string {
	out := make(map[string]string, len(s.assigned))
	for r, c := range s.assigned {
		out[r] = c.ID
	}
	return out
}

func stringListContains(l []string, s string) bool {
	for _, x := range l {
		if s == x {
			return true
		}
	}
	return false
}

func cardListWithout(l []tichu.Card, c tichu.Card) ([]tichu.Card, bool) {
	for i, x := range l {
		if x == c {
			var out []tichu.Card
			out = append(out, l[0:i]...)
			out = append(out, l[i+1:]...)
			return out, true
		}
	}
	return l, false
}

func passCardIndex(l []tichu.PassCard, id string) int {
	for i, x := range l {
		if x.ID == id {
			return i
		}
	}
	return -1
}
