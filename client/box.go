package client

import (
	"context"
	"sync"
)

// Box holds the latest snapshot. Readers can wait for it to change.
type Box struct {
	l *sync.Mutex
	c *sync.Cond
	v *Snapshot
}

func NewBox() *Box {
	l := &sync.Mutex{}
	c := sync.NewCond(l)
	return &Box{l, c, nil}
}

func (b *Box) Put(v *Snapshot) {
	b.l.Lock()
	b.v = v
	b.l.Unlock()
	b.c.Broadcast()
}

func (b *Box) Get() *Snapshot {
	b.l.Lock()
	defer b.l.Unlock()
	return b.v
}

// Wait blocks until the box holds something other than seen.
func (b *Box) Wait(seen *Snapshot) *Snapshot {
	b.l.Lock()
	defer b.l.Unlock()
	for b.v == seen {
		b.c.Wait()
	}
	return b.v
}

// Listen is Wait on a channel. If ctx ends first the channel is closed
// without a value.
func (b *Box) Listen(ctx context.Context, seen *Snapshot) <-chan *Snapshot {
	ch := make(chan *Snapshot, 1)
	go func() {
		defer close(ch)

		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-ctx.Done():
				b.l.Lock()
				b.c.Broadcast()
				b.l.Unlock()
			case <-stop:
			}
		}()

		b.l.Lock()
		for b.v == seen && ctx.Err() == nil {
			b.c.Wait()
		}
		v := b.v
		b.l.Unlock()

		if ctx.Err() == nil {
			ch <- v
		}
	}()
	return ch
}
