package service

import (
	"log/slog"
	"sync"

	"chatshell/internal/model"
)

// DefaultSubscriberBuffer is the number of events a subscriber may lag behind
// before further events are dropped for it.
const DefaultSubscriberBuffer = 16

// Notifier fans state change events out to subscribers. Publishing never blocks:
// a subscriber whose buffer is full misses the event and is expected to re-read
// the snapshot.
type Notifier struct {
	mu          sync.Mutex
	subscribers map[uint64]chan model.Event
	nextID      uint64
	buffer      int
	closed      bool
}

func NewNotifier(buffer int) *Notifier {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Notifier{subscribers: make(map[uint64]chan model.Event), buffer: buffer}
}

// Subscribe registers a new subscriber. The returned function unsubscribes and
// closes the channel; it is safe to call more than once.
func (n *Notifier) Subscribe() (<-chan model.Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan model.Event, n.buffer)
	if n.closed {
		close(ch)
		return ch, func() {}
	}

	id := n.nextID
	n.nextID++
	n.subscribers[id] = ch

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subscribers[id]; ok {
			delete(n.subscribers, id)
			close(sub)
		}
	}
}

func (n *Notifier) Publish(ev model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, ch := range n.subscribers {
		select {
		case ch <- ev:
		default:
			slog.Warn("Dropping event for slow subscriber", "subscriber", id, "event", ev.Type)
		}
	}
}

// Close closes every subscriber channel. Later subscriptions receive an already
// closed channel.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for id, ch := range n.subscribers {
		delete(n.subscribers, id)
		close(ch)
	}
}

// Subscribers returns the number of active subscriptions.
func (n *Notifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subscribers)
}
