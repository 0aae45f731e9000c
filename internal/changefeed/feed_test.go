package changefeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case event := <-sub.Events():
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublishDeliversToMatchingTable(t *testing.T) {
	feed := New()
	defer feed.Close()

	jobs := feed.Subscribe("job_listings", nil)
	defer jobs.Unsubscribe()
	messages := feed.Subscribe("messages", nil)
	defer messages.Unsubscribe()

	feed.Publish(Event{Action: ActionInsert, Table: "job_listings", RowID: 1})

	event := receiveEvent(t, jobs)
	assert.Equal(t, ActionInsert, event.Action)
	assert.Equal(t, int64(1), event.RowID)

	select {
	case <-messages.Events():
		t.Fatal("message subscriber received a job event")
	default:
	}
}

func TestSubscribeFilter(t *testing.T) {
	feed := New()
	defer feed.Close()

	mine := feed.Subscribe("messages", func(e Event) bool {
		return e.RowID%2 == 0
	})
	defer mine.Unsubscribe()

	feed.Publish(Event{Action: ActionInsert, Table: "messages", RowID: 1})
	feed.Publish(Event{Action: ActionInsert, Table: "messages", RowID: 2})

	event := receiveEvent(t, mine)
	assert.Equal(t, int64(2), event.RowID)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	feed := New()
	defer feed.Close()

	sub := feed.Subscribe("applications", nil)
	sub.Unsubscribe()

	feed.Publish(Event{Action: ActionUpdate, Table: "applications", RowID: 5})

	select {
	case <-sub.Events():
		t.Fatal("received event after unsubscribe")
	case <-sub.Done():
	}
}

func TestUnsubscribeTwiceIsSafe(t *testing.T) {
	feed := New()
	defer feed.Close()

	sub := feed.Subscribe("applications", nil)
	sub.Unsubscribe()
	assert.NotPanics(t, func() { sub.Unsubscribe() })
}

func TestDeliveryOrderPreserved(t *testing.T) {
	feed := New()
	defer feed.Close()

	sub := feed.Subscribe("job_listings", nil)
	defer sub.Unsubscribe()

	for i := int64(1); i <= 5; i++ {
		feed.Publish(Event{Action: ActionInsert, Table: "job_listings", RowID: i})
	}

	for i := int64(1); i <= 5; i++ {
		event := receiveEvent(t, sub)
		require.Equal(t, i, event.RowID)
	}
}

func TestClosedFeedRejectsPublishAndSubscribe(t *testing.T) {
	feed := New()
	sub := feed.Subscribe("messages", nil)
	feed.Close()

	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		t.Fatal("subscription not cancelled on feed close")
	}

	assert.NotPanics(t, func() {
		feed.Publish(Event{Action: ActionInsert, Table: "messages", RowID: 1})
	})

	late := feed.Subscribe("messages", nil)
	select {
	case <-late.Done():
	default:
		t.Fatal("subscription on a closed feed should start cancelled")
	}
}
