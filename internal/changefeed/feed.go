// Package changefeed is the in-process row-event bus. Every mutation in
// the service layer publishes an event; live views and the WebSocket feed
// subscribe per table. Events carry current state only: there is no
// replay, backfill or dedup.
package changefeed

import (
	"sync"

	"github.com/internlink/internlink/internal/pkg/logger"
)

// Action classifies a row event
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Event is one row change. Row holds the row after the change for inserts
// and updates; for deletes it may be nil and RowID identifies the removed row.
type Event struct {
	Action Action
	Table  string
	RowID  int64
	Row    interface{}
}

// Filter decides whether a subscriber receives an event. A nil filter
// receives every event on the table.
type Filter func(Event) bool

// subscriberBuffer bounds the per-subscriber channel. A subscriber that
// stops draining loses events rather than blocking publishers.
const subscriberBuffer = 64

// Feed fans row events out to table subscribers
type Feed struct {
	mu     sync.RWMutex
	subs   map[int64]*Subscription
	nextID int64
	closed bool
}

// Subscription is one cancellable table subscription
type Subscription struct {
	feed   *Feed
	id     int64
	table  string
	filter Filter
	ch     chan Event
	done   chan struct{}
	once   sync.Once
}

// New creates an empty feed
func New() *Feed {
	return &Feed{
		subs: make(map[int64]*Subscription),
	}
}

// Subscribe registers for events on a table. The returned subscription
// must be released with Unsubscribe when the consumer goes away.
func (f *Feed) Subscribe(table string, filter Filter) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	sub := &Subscription{
		feed:   f,
		id:     f.nextID,
		table:  table,
		filter: filter,
		ch:     make(chan Event, subscriberBuffer),
		done:   make(chan struct{}),
	}
	if !f.closed {
		f.subs[sub.id] = sub
	} else {
		close(sub.done)
	}
	return sub
}

// Publish delivers an event to every matching subscriber of its table.
// Delivery is in registration order; a full subscriber buffer drops the
// event for that subscriber only.
func (f *Feed) Publish(event Event) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}

	for _, sub := range f.subs {
		if sub.table != event.Table {
			continue
		}
		if sub.filter != nil && !sub.filter(event) {
			continue
		}
		select {
		case <-sub.done:
			// Cancelled between lookup and delivery
		case sub.ch <- event:
		default:
			logger.Warn().
				Str("table", event.Table).
				Str("action", string(event.Action)).
				Int64("rowId", event.RowID).
				Msg("Change feed subscriber buffer full, dropping event")
		}
	}
}

// Close cancels every subscription and rejects further publishes
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	for id, sub := range f.subs {
		sub.once.Do(func() { close(sub.done) })
		delete(f.subs, id)
	}
}

// Events is the subscriber's receive channel
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Done is closed when the subscription is cancelled. Consumers select on
// it alongside Events so teardown is honored at the consuming boundary:
// an event sitting in the buffer after cancellation is never processed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Unsubscribe cancels the subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() { close(s.done) })

	s.feed.mu.Lock()
	delete(s.feed.subs, s.id)
	s.feed.mu.Unlock()
}
