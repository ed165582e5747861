package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"

	"github.com/undeconstructed/gotichu/comms"
	"github.com/undeconstructed/gotichu/tichu"
)

// Subprotocol is what the server must speak.
const Subprotocol = "comms"

var errClosed = errors.New("connection closed")

// Channel is the client's end of the publish/subscribe connection to the
// server. Sending never blocks, and receiving is by subscription.
type Channel struct {
	log zerolog.Logger

	mu   sync.Mutex
	out  *queue
	up   chan struct{}
	subs map[*Subscription]struct{}
}

func NewChannel() *Channel {
	log := log.With().Str("component", "channel").Logger()
	return &Channel{
		log:  log,
		up:   make(chan struct{}),
		subs: map[*Subscription]struct{}{},
	}
}

// Send queues a message for the server. If there is no connection the
// message is logged and dropped; the server will push its state again on
// reconnect, so nothing is retried.
func (ch *Channel) Send(name string, payload interface{}) {
	msg, err := comms.Encode(name, payload)
	if err != nil {
		ch.log.Error().Err(err).Str("command", name).Msg("encode error")
		return
	}

	ch.mu.Lock()
	queued := ch.out != nil && ch.out.push(msg)
	ch.mu.Unlock()

	if !queued {
		logDropped(ch.log, msg, tichu.ErrTransportUnavailable)
	}
}

func logDropped(log zerolog.Logger, msg comms.Message, err error) {
	log.Warn().Err(err).Str("command", msg.Type()).Msg("dropping command")
}

// Connected says if there is a live session.
func (ch *Channel) Connected() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.out != nil
}

// WaitConnected blocks until there is a live session.
func (ch *Channel) WaitConnected(ctx context.Context) error {
	ch.mu.Lock()
	up := ch.up
	ch.mu.Unlock()
	select {
	case <-up:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe starts a new sequence of messages with the given names, or all
// messages if no names are given. Messages arrive in the order the server
// sent them.
func (ch *Channel) Subscribe(names ...string) *Subscription {
	s := &Subscription{
		ch:   ch,
		q:    newQueue(),
		c:    make(chan comms.Message),
		done: make(chan struct{}),
	}
	if len(names) > 0 {
		s.names = map[string]bool{}
		for _, n := range names {
			s.names[tichu.CanonicalEventName(n)] = true
		}
	}

	ch.mu.Lock()
	ch.subs[s] = struct{}{}
	ch.mu.Unlock()

	go s.pump()
	return s
}

// OnReceive subscribes to a single event name.
func (ch *Channel) OnReceive(name string) *Subscription {
	return ch.Subscribe(name)
}

func (ch *Channel) deliver(msg comms.Message) {
	msg.Head = comms.Head(tichu.CanonicalEventName(string(msg.Head)))
	name := msg.Type()

	ch.mu.Lock()
	defer ch.mu.Unlock()
	for s := range ch.subs {
		if s.wants(name) {
			s.q.push(msg)
		}
	}
}

func (ch *Channel) unsubscribe(s *Subscription) {
	ch.mu.Lock()
	delete(ch.subs, s)
	ch.mu.Unlock()
}

// Run dials the server and serves the connection until it ends. ws:// and
// wss:// urls speak websocket, tcp:// speaks newline separated frames.
func (ch *Channel) Run(ctx context.Context, url string) error {
	if addr := strings.TrimPrefix(url, "tcp://"); addr != url {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("dial %s: %w", url, err)
		}
		return ch.ServeStream(ctx, conn)
	}

	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		Subprotocols: []string{Subprotocol},
	})
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	if conn.Subprotocol() != Subprotocol {
		conn.Close(websocket.StatusPolicyViolation, "client must speak the comms subprotocol")
		return fmt.Errorf("server does not speak %s", Subprotocol)
	}

	return ch.Serve(ctx, conn)
}

// Keep runs connections one after another until the context ends, waiting
// a little between them.
func (ch *Channel) Keep(ctx context.Context, url string, delay time.Duration) error {
	for {
		err := ch.Run(ctx, url)
		if ctx.Err() != nil {
			return nil
		}
		ch.log.Warn().Err(err).Msgf("disconnected, retrying in %v", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil
		}
	}
}

// link is one open connection, whatever it runs over.
type link interface {
	read(ctx context.Context) (comms.Message, error)
	write(ctx context.Context, msg comms.Message) error
	close()
}

type wsLink struct {
	conn *websocket.Conn
}

func (l wsLink) read(ctx context.Context) (comms.Message, error) {
	typ, bytes, err := l.conn.Read(ctx)
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
		return comms.Message{}, errClosed
	}
	if err != nil {
		return comms.Message{}, fmt.Errorf("read: %w", err)
	}
	if typ != websocket.MessageText {
		return comms.Message{}, fmt.Errorf("%w: %v message", comms.ErrBadFrame, typ)
	}
	return comms.UnmarshalFrame(bytes)
}

func (l wsLink) write(ctx context.Context, msg comms.Message) error {
	bytes, err := comms.MarshalFrame(msg)
	if err != nil {
		return err
	}
	return l.conn.Write(ctx, websocket.MessageText, bytes)
}

func (l wsLink) close() {
	l.conn.Close(websocket.StatusNormalClosure, "")
}

type streamLink struct {
	conn io.ReadWriteCloser
	enc  *comms.Encoder
	dec  *comms.Decoder
}

func (l *streamLink) read(ctx context.Context) (comms.Message, error) {
	msg, err := l.dec.Decode()
	if err == io.EOF {
		return msg, errClosed
	}
	if err != nil && !errors.Is(err, comms.ErrBadFrame) {
		return msg, fmt.Errorf("read: %w", err)
	}
	return msg, err
}

func (l *streamLink) write(ctx context.Context, msg comms.Message) error {
	return l.enc.Send(msg)
}

func (l *streamLink) close() {
	l.conn.Close()
}

// Serve runs a session over a websocket connection that is already open.
func (ch *Channel) Serve(ctx context.Context, conn *websocket.Conn) error {
	return ch.session(ctx, wsLink{conn})
}

// ServeStream runs a session over a stream, such as a tcp connection.
func (ch *Channel) ServeStream(ctx context.Context, conn io.ReadWriteCloser) error {
	return ch.session(ctx, &streamLink{conn, comms.NewEncoder(conn), comms.NewDecoder(conn)})
}

func (ch *Channel) session(ctx context.Context, l link) error {
	log := ch.log.With().Str("session", uuid.New().String()).Logger()
	log.Info().Msg("connected")

	out := newQueue()
	ch.mu.Lock()
	ch.out = out
	close(ch.up)
	ch.mu.Unlock()

	defer func() {
		ch.mu.Lock()
		ch.out = nil
		ch.up = make(chan struct{})
		left := out.close()
		ch.mu.Unlock()
		for _, msg := range left {
			logDropped(log, msg, tichu.ErrTransportUnavailable)
		}
	}()

	grp, gctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		// reads on streams cannot be cancelled, only closed
		<-gctx.Done()
		l.close()
		return nil
	})

	grp.Go(func() error {
		// read out queue, write to conn
		for {
			msg, ok := out.pop(gctx)
			if !ok {
				return nil
			}
			if err := l.write(gctx, msg); err != nil {
				logDropped(log, msg, err)
				return fmt.Errorf("write: %w", err)
			}
			log.Debug().Str("head", string(msg.Head)).Msg("sent")
		}
	})

	grp.Go(func() error {
		// read conn, deliver to subscribers
		for {
			msg, err := l.read(gctx)
			if errors.Is(err, comms.ErrBadFrame) {
				log.Info().Err(err).Msg("junk from server")
				continue
			}
			if err != nil {
				return err
			}
			log.Debug().Str("head", string(msg.Head)).Msg("received")
			ch.deliver(msg)
		}
	})

	err := grp.Wait()
	log.Info().Err(err).Msg("disconnected")

	if err == errClosed || ctx.Err() != nil {
		return nil
	}
	return err
}

// Subscription is one registration for inbound messages.
type Subscription struct {
	ch    *Channel
	names map[string]bool
	q     *queue
	c     chan comms.Message
	done  chan struct{}
	once  sync.Once
}

// C is the sequence. It is closed after Close.
func (s *Subscription) C() <-chan comms.Message {
	return s.c
}

// Close ends the subscription.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.ch.unsubscribe(s)
		s.q.close()
		close(s.done)
	})
}

func (s *Subscription) wants(name string) bool {
	return s.names == nil || s.names[name]
}

func (s *Subscription) pump() {
	defer close(s.c)
	for {
		msg, ok := s.q.pop(context.Background())
		if !ok {
			return
		}
		select {
		case s.c <- msg:
		case <-s.done:
			return
		}
	}
}
