package websocket

import (
	"sync"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/rs/zerolog"
)

// Bridge routes change-feed events onto the hub. Row events addressed
// to a specific account (applications, messages, notifications) go to
// that user's connections; public listing changes are broadcast.
type Bridge struct {
	feed   *changefeed.Feed
	hub    *Hub
	logger zerolog.Logger

	mu   sync.Mutex
	subs []*changefeed.Subscription
	wg   sync.WaitGroup
}

// NewBridge creates a stopped bridge
func NewBridge(feed *changefeed.Feed, hub *Hub, logger zerolog.Logger) *Bridge {
	return &Bridge{
		feed:   feed,
		hub:    hub,
		logger: logger,
	}
}

// Start subscribes to the routed tables
func (b *Bridge) Start() {
	b.forward("job_listings", b.routeListing)
	b.forward("applications", b.routeApplication)
	b.forward("messages", b.routeMessage)
	b.forward("notifications", b.routeNotification)
}

// Stop cancels the subscriptions and waits for the routers
func (b *Bridge) Stop() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
	b.wg.Wait()
}

func (b *Bridge) forward(table string, route func(changefeed.Event)) {
	sub := b.feed.Subscribe(table, nil)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-sub.Done():
				return
			case event := <-sub.Events():
				route(event)
			}
		}
	}()
}

func feedMessage(event changefeed.Event) *FeedMessage {
	return &FeedMessage{
		Table:     event.Table,
		Action:    string(event.Action),
		RowID:     event.RowID,
		Row:       event.Row,
		Timestamp: time.Now(),
	}
}

// routeListing: listings are public, every connection gets them
func (b *Bridge) routeListing(event changefeed.Event) {
	b.hub.Broadcast(feedMessage(event))
}

// routeApplication: the applicant follows their own applications
func (b *Bridge) routeApplication(event changefeed.Event) {
	app, ok := event.Row.(*models.Application)
	if !ok {
		b.logger.Warn().Int64("rowId", event.RowID).Msg("Application event carried an unexpected payload")
		return
	}
	b.hub.SendToUser(app.InternID, feedMessage(event))
}

// routeMessage: both parties of the thread receive it
func (b *Bridge) routeMessage(event changefeed.Event) {
	msg, ok := event.Row.(*models.Message)
	if !ok {
		b.logger.Warn().Int64("rowId", event.RowID).Msg("Message event carried an unexpected payload")
		return
	}
	b.hub.SendToUser(msg.ReceiverID, feedMessage(event))
	b.hub.SendToUser(msg.SenderID, feedMessage(event))
}

// routeNotification: the event RowID carries the target user
func (b *Bridge) routeNotification(event changefeed.Event) {
	b.hub.SendToUser(event.RowID, feedMessage(event))
}
