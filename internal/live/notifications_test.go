package live

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDesktop struct {
	mu        sync.Mutex
	granted   bool
	requests  int
	delivered []models.Notification
}

func (d *recordingDesktop) RequestPermission() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests++
	return d.granted
}

func (d *recordingDesktop) Notify(n models.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delivered = append(d.delivered, n)
}

func (d *recordingDesktop) deliveredCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.delivered)
}

func pushNotification(feed *changefeed.Feed, userID int64, message string) {
	feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  NotificationsTable,
		RowID:  userID,
		Row: models.Notification{
			Type:      models.NotificationNewMessage,
			Message:   message,
			CreatedAt: time.Now(),
		},
	})
}

func waitForWindow(t *testing.T, v *NotificationView, size int) []models.Notification {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if window := v.Notifications(); len(window) == size {
			return window
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("window never reached %d notifications (have %d)", size, len(v.Notifications()))
	return nil
}

func TestNotificationWindowCapsAtTen(t *testing.T) {
	feed := changefeed.New()
	defer feed.Close()

	v := NewNotificationView(7, feed, nil, zerolog.Nop())
	v.Start()
	defer v.Stop()

	for i := 1; i <= 11; i++ {
		pushNotification(feed, 7, fmt.Sprintf("message %d", i))
	}

	window := waitForWindow(t, v, 10)

	// Newest first; the very first notification fell off
	assert.Equal(t, "message 11", window[0].Message)
	assert.Equal(t, "message 2", window[9].Message)
}

func TestNotificationViewFiltersByUser(t *testing.T) {
	feed := changefeed.New()
	defer feed.Close()

	v := NewNotificationView(7, feed, nil, zerolog.Nop())
	v.Start()
	defer v.Stop()

	pushNotification(feed, 7, "for me")
	pushNotification(feed, 8, "for someone else")
	pushNotification(feed, 7, "also for me")

	window := waitForWindow(t, v, 2)
	assert.Equal(t, "also for me", window[0].Message)
	assert.Equal(t, "for me", window[1].Message)
}

func TestDesktopPermissionRequestedOnce(t *testing.T) {
	feed := changefeed.New()
	defer feed.Close()

	desktop := &recordingDesktop{granted: false}
	v := NewNotificationView(7, feed, desktop, zerolog.Nop())

	v.Start()
	pushNotification(feed, 7, "one")
	waitForWindow(t, v, 1)
	v.Stop()

	v.Start()
	pushNotification(feed, 7, "two")
	waitForWindow(t, v, 2)
	v.Stop()

	desktop.mu.Lock()
	requests := desktop.requests
	desktop.mu.Unlock()

	require.Equal(t, 1, requests)
	// Permission denied: nothing reached the desktop
	assert.Zero(t, desktop.deliveredCount())
}

func TestDesktopNotifiesWhenGranted(t *testing.T) {
	feed := changefeed.New()
	defer feed.Close()

	desktop := &recordingDesktop{granted: true}
	v := NewNotificationView(7, feed, desktop, zerolog.Nop())
	v.Start()
	defer v.Stop()

	pushNotification(feed, 7, "hello")
	waitForWindow(t, v, 1)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && desktop.deliveredCount() == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 1, desktop.deliveredCount())
}
