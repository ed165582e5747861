package client

import (
	"context"
	"sync"

	"github.com/undeconstructed/gotichu/comms"
)

// queue is an unbounded FIFO of messages with one reader.
type queue struct {
	mu     sync.Mutex
	items  []comms.Message
	closed bool
	wake   chan struct{}
}

func newQueue() *queue {
	return &queue{wake: make(chan struct{}, 1)}
}

// push adds a message, unless the queue is closed.
func (q *queue) push(msg comms.Message) bool {
	q.mu.Lock()
	ok := !q.closed
	if ok {
		q.items = append(q.items, msg)
	}
	q.mu.Unlock()
	q.signal()
	return ok
}

// close stops the queue and gives back whatever was never popped.
func (q *queue) close() []comms.Message {
	q.mu.Lock()
	left := q.items
	q.items = nil
	q.closed = true
	q.mu.Unlock()
	q.signal()
	return left
}

func (q *queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// pop waits for the next message. It gives false once the queue is closed
// or the context ends.
func (q *queue) pop(ctx context.Context) (comms.Message, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			msg := q.items[0]
			q.items[0] = comms.Message{}
			q.items = q.items[1:]
			q.mu.Unlock()
			return msg, true
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return comms.Message{}, false
		}

		select {
		case <-q.wake:
		case <-ctx.Done():
			return comms.Message{}, false
		}
	}
}
