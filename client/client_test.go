package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undeconstructed/gotichu/comms"
	"github.com/undeconstructed/gotichu/tichu"
)

// recTransport takes events from a real channel but keeps what is sent.
type recTransport struct {
	*Channel
	recSender
}

func (r *recTransport) Send(name string, payload interface{}) {
	r.recSender.Send(name, payload)
}

func push(ch *Channel, head string, data interface{}) {
	msg, _ := comms.Encode(head, data)
	ch.deliver(msg)
}

func TestClient(t *testing.T) {
	tr := &recTransport{Channel: NewChannel()}
	cli := NewClient(tr, newRecSink())

	// before Run, and still not lost
	push(tr.Channel, tichu.EvUpdateHand, tichu.UpdateHand{Hand: []tichu.Card{"a", "b"}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cli.Run(ctx) }()

	push(tr.Channel, "bogus", nil)
	push(tr.Channel, tichu.EvYourTurn, tichu.YourTurn{YourTurn: true})

	require.Eventually(t, func() bool {
		s := cli.Box().Get()
		return s != nil && s.Mode == MyTurn
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []tichu.Card{"a", "b"}, cli.Box().Get().Hand)

	act := cli.Actions()
	require.NoError(t, act.Toggle("b"))
	require.NoError(t, act.PlayCards())
	assert.Equal(t, sent{tichu.CmdPlayCard, tichu.PlayCards{Cards: []tichu.Card{"b"}}}, tr.last())

	err := act.Wish("K")
	assert.True(t, errors.Is(err, tichu.ErrNotNow))
	assert.Len(t, tr.all(), 1)

	cancel()
	assert.Equal(t, context.Canceled, <-done)
	assert.Equal(t, ErrStopped, act.Pass())
}

func TestClient_promptFlow(t *testing.T) {
	tr := &recTransport{Channel: NewChannel()}
	cli := NewClient(tr, newRecSink())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cli.Run(ctx)

	push(tr.Channel, tichu.EvTurnUpdate, tichu.TurnUpdate{Current: "Ann", You: "Ann"})
	push(tr.Channel, tichu.EvAskWish, nil)

	var seen *Snapshot
	for seen == nil || seen.Mode != AwaitingWish {
		select {
		case seen = <-cli.Box().Listen(ctx, seen):
		case <-time.After(2 * time.Second):
			t.Fatal("no wish prompt")
		}
	}
	assert.Equal(t, MyTurn, seen.Resume)
	assert.Equal(t, "Your turn!", seen.Banner)

	require.NoError(t, cli.Actions().Wish("none"))
	assert.Equal(t, sent{tichu.CmdWishCard, tichu.WishCard{Wish: tichu.NoWish}}, tr.last())
	assert.Eventually(t, func() bool {
		return cli.Box().Get().Mode == MyTurn
	}, 2*time.Second, 10*time.Millisecond)
}
