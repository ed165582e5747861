package client

import (
	"github.com/undeconstructed/gotichu/tichu"
)

// Actions is everything a player can do. Each call runs on the client loop
// and returns the local validation error, if any.
type Actions interface {
	Join(name, team string) error
	Toggle(card tichu.Card) error
	PlayCards() error
	PlayMove(move string) error
	Pass() error
	CallTichu() error
	GrandTichu(choice bool) error
	Wish(rank string) error
	ChooseDragonRecipient(name string) error
	Assign(recipient, cardID string) error
	Unassign(recipient string) error
	PassCards() error
	ReadyForNextRound() error
}

type actionProxy struct {
	client *Client
}

func (ap *actionProxy) Join(name, team string) error {
	return ap.client.do(func(m *Machine) error { return m.Join(name, team) })
}

func (ap *actionProxy) Toggle(card tichu.Card) error {
	return ap.client.do(func(m *Machine) error { return m.Toggle(card) })
}

func (ap *actionProxy) PlayCards() error {
	return ap.client.do((*Machine).PlayCards)
}

func (ap *actionProxy) PlayMove(move string) error {
	return ap.client.do(func(m *Machine) error { return m.PlayMove(move) })
}

func (ap *actionProxy) Pass() error {
	return ap.client.do((*Machine).Pass)
}

func (ap *actionProxy) CallTichu() error {
	return ap.client.do((*Machine).CallTichu)
}

func (ap *actionProxy) GrandTichu(choice bool) error {
	return ap.client.do(func(m *Machine) error { return m.GrandTichu(choice) })
}

func (ap *actionProxy) Wish(rank string) error {
	return ap.client.do(func(m *Machine) error { return m.Wish(rank) })
}

func (ap *actionProxy) ChooseDragonRecipient(name string) error {
	return ap.client.do(func(m *Machine) error { return m.ChooseDragonRecipient(name) })
}

func (ap *actionProxy) Assign(recipient, cardID string) error {
	return ap.client.do(func(m *Machine) error { return m.Assign(recipient, cardID) })
}

func (ap *actionProxy) Unassign(recipient string) error {
	return ap.client.do(func(m *Machine) error { return m.Unassign(recipient) })
}

func (ap *actionProxy) PassCards() error {
	return ap.client.do((*Machine).PassCards)
}

func (ap *actionProxy) ReadyForNextRound() error {
	return ap.client.do((*Machine).ReadyForNextRound)
}
