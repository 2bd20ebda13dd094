// Package waiter lets a command wait for the next message of one author in
// one channel without blocking the handling of other messages.
package waiter

import (
	"context"
	"errors"
	"go-economy-bot/model"
	"sync"
	"time"
)

// ErrTimeout is returned when no qualifying message arrived in time.
var ErrTimeout = errors.New("timed out waiting for a reply")

// ErrBusy is returned when the author already has a pending wait in the channel.
var ErrBusy = errors.New("a reply is already awaited from this author in this channel")

type key struct {
	channelID string
	authorID  string
}

// Registry holds the pending waits. The zero value is not usable; call New.
type Registry struct {
	mu      sync.Mutex
	pending map[key]chan *model.Message
}

func New() *Registry {
	return &Registry{pending: make(map[key]chan *model.Message)}
}

// Subscription is a registered wait for one author in one channel.
type Subscription struct {
	r  *Registry
	k  key
	ch chan *model.Message
}

// Subscribe registers interest in the next message by authorID in
// channelID. Messages delivered after Subscribe returns are held for Await.
func (r *Registry) Subscribe(channelID, authorID string) (*Subscription, error) {
	k := key{channelID: channelID, authorID: authorID}
	ch := make(chan *model.Message, 1)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[k]; ok {
		return nil, ErrBusy
	}
	r.pending[k] = ch
	return &Subscription{r: r, k: k, ch: ch}, nil
}

// Await blocks until the subscribed message is delivered, the timeout
// elapses or ctx is done. The subscription is removed in every case.
func (s *Subscription) Await(ctx context.Context, timeout time.Duration) (*model.Message, error) {
	defer s.Cancel()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg := <-s.ch:
		return msg, nil
	case <-timer.C:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel removes the subscription if it is still pending.
func (s *Subscription) Cancel() {
	s.r.cancel(s.k, s.ch)
}

// Wait is Subscribe followed by Await.
func (r *Registry) Wait(ctx context.Context, channelID, authorID string, timeout time.Duration) (*model.Message, error) {
	sub, err := r.Subscribe(channelID, authorID)
	if err != nil {
		return nil, err
	}
	return sub.Await(ctx, timeout)
}

// Deliver hands msg to the wait registered for its channel and author.
// It reports whether msg was consumed.
func (r *Registry) Deliver(msg *model.Message) bool {
	k := key{channelID: msg.ChannelID, authorID: msg.Author.ID}

	r.mu.Lock()
	ch, ok := r.pending[k]
	if ok {
		delete(r.pending, k)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	ch <- msg
	return true
}

// Pending reports the number of outstanding waits.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Registry) cancel(k key, ch chan *model.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.pending[k]; ok && cur == ch {
		delete(r.pending, k)
	}
}
