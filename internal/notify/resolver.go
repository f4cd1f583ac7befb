// Package notify implements change notification for the tool inventory:
// an in-memory publish/subscribe registry keyed by address, and a file
// watcher that turns writes from other processes into notifications.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/inventory/pkg/types"
)

// subscriberBufferSize is the channel buffer for each subscriber. A change
// signal carries no payload, so one pending signal is as good as many.
const subscriberBufferSize = 16

type subscription struct {
	addr        types.Address
	descendants bool
	ch          chan types.Address
	done        chan struct{} // closed on removal; ends the ctx watcher
}

// Resolver is the registry that row sets subscribe to and the provider
// publishes to after every successful write.
type Resolver struct {
	mu     sync.RWMutex
	subs   map[string]*subscription // subID -> subscription
	closed bool
	logger *slog.Logger
}

// NewResolver creates an empty registry. Pass nil logger for default.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		subs:   make(map[string]*subscription),
		logger: logger.With("component", "notify"),
	}
}

// Subscribe registers interest in changes at addr. With descendants set, a
// collection subscriber also hears about changes to individual items.
// Returns a channel that receives the changed address and a subscription ID
// for Unsubscribe. The subscription is cleaned up when ctx is cancelled,
// and the channel is closed at that point. Unsubscribe and Close end the
// subscription early, including its ctx watcher.
func (r *Resolver) Subscribe(ctx context.Context, addr types.Address, descendants bool) (<-chan types.Address, string) {
	subID := uuid.New().String()
	ch := make(chan types.Address, subscriberBufferSize)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		close(ch)
		return ch, subID
	}
	sub := &subscription{addr: addr, descendants: descendants, ch: ch, done: make(chan struct{})}
	r.subs[subID] = sub
	r.mu.Unlock()

	r.logger.Debug("subscriber added",
		"address", addr.String(),
		"descendants", descendants,
		"sub_id", subID)

	go func() {
		select {
		case <-ctx.Done():
			r.Unsubscribe(subID)
		case <-sub.done:
		}
	}()

	return ch, subID
}

// Unsubscribe removes a subscription and closes its channel. Unknown IDs are
// ignored.
func (r *Resolver) Unsubscribe(subID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[subID]
	if !ok {
		return
	}
	delete(r.subs, subID)
	close(sub.ch)
	close(sub.done)

	r.logger.Debug("subscriber removed", "address", sub.addr.String(), "sub_id", subID)
}

// NotifyChange signals that data at addr may have changed. It reaches
// subscribers on addr itself, subscribers on an enclosing address that
// asked for descendants, and subscribers on any address inside addr.
// Delivery never blocks: a subscriber that already has a signal pending
// keeps that one.
func (r *Resolver) NotifyChange(addr types.Address) {
	r.mu.RLock()
	targets := make([]chan types.Address, 0, len(r.subs))
	for _, sub := range r.subs {
		if interested(sub, addr) {
			targets = append(targets, sub.ch)
		}
	}
	// Sends happen under the read lock so Unsubscribe cannot close a
	// channel mid-send; every send is non-blocking.
	for _, ch := range targets {
		select {
		case ch <- addr:
		default:
			r.logger.Debug("dropped signal for busy subscriber", "address", addr.String())
		}
	}
	r.mu.RUnlock()

	r.logger.Debug("change notified", "address", addr.String(), "subscribers", len(targets))
}

// Len returns the number of live subscriptions.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// Close removes every subscription and closes their channels. Later
// subscriptions receive an already closed channel.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, sub := range r.subs {
		close(sub.ch)
		close(sub.done)
		delete(r.subs, id)
	}
	r.closed = true

	r.logger.Debug("resolver closed")
}

func interested(sub *subscription, changed types.Address) bool {
	switch {
	case sub.addr == changed:
		return true
	case sub.descendants && sub.addr.Contains(changed):
		return true
	case changed.Contains(sub.addr):
		return true
	}
	return false
}
