package client

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/undeconstructed/gotichu/comms"
	"github.com/undeconstructed/gotichu/tichu"
)

// ErrStopped means the client loop is not running.
var ErrStopped = errors.New("client stopped")

// Inbound is where events come from.
type Inbound interface {
	Subscribe(names ...string) *Subscription
}

// Transport is both halves of a channel.
type Transport interface {
	Inbound
	Sender
}

type action struct {
	do  func(*Machine) error
	rep chan error
}

// Client owns a Machine and feeds it, one thing at a time, with events
// from the server and actions from the player.
type Client struct {
	events  *Subscription
	locCh   chan action
	doneCh  chan struct{}
	machine *Machine
	box     *Box
	log     zerolog.Logger
}

// NewClient subscribes to the events straight away, so nothing that
// arrives before Run is lost.
func NewClient(t Transport, sink Sink) *Client {
	log := log.With().Str("component", "client").Logger()
	return &Client{
		events:  t.Subscribe(tichu.EventNames...),
		locCh:   make(chan action),
		doneCh:  make(chan struct{}),
		machine: NewMachine(t, sink),
		box:     NewBox(),
		log:     log,
	}
}

// Box has the latest snapshot, updated after every step.
func (c *Client) Box() *Box {
	return c.box
}

// Actions is how the player acts.
func (c *Client) Actions() Actions {
	return &actionProxy{client: c}
}

// Run is the client's main loop. It returns when the context ends.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.doneCh)
	defer c.events.Close()

	c.publish()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a := <-c.locCh:
			a.rep <- a.do(c.machine)
		case msg, ok := <-c.events.C():
			if !ok {
				return nil
			}
			c.handle(msg)
		}
		c.publish()
	}
}

func (c *Client) handle(msg comms.Message) {
	ev, err := tichu.DecodeEvent(msg)
	if err != nil {
		c.log.Warn().Err(err).Str("head", string(msg.Head)).Msg("bad event")
		return
	}
	c.machine.Handle(ev)
}

func (c *Client) publish() {
	c.box.Put(c.machine.Snapshot())
}

// do runs f on the loop and waits for the answer.
func (c *Client) do(f func(*Machine) error) error {
	a := action{f, make(chan error, 1)}
	select {
	case c.locCh <- a:
	case <-c.doneCh:
		return ErrStopped
	}
	return <-a.rep
}
