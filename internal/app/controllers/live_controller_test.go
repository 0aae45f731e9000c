package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/internlink/internlink/internal/live"
)

func newListingsWatcher(feed *changefeed.Feed, snapshot live.SnapshotFunc[*models.JobListing]) *live.Watcher[*models.JobListing] {
	return live.NewWatcher(live.WatcherConfig[*models.JobListing]{
		Table:    "job_listings",
		Feed:     feed,
		Snapshot: snapshot,
		Fallback: live.DemoListings(),
		Decode: func(event changefeed.Event) (*models.JobListing, bool) {
			job, ok := event.Row.(*models.JobListing)
			return job, ok
		},
		RowID:  func(job *models.JobListing) int64 { return job.ID },
		Logger: zerolog.Nop(),
	})
}

// Without a backend the snapshot fails and the listings endpoint serves
// the demo dataset instead of an error
func TestLiveListingsServesDemoFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	feed := changefeed.New()
	defer feed.Close()

	watcher := newListingsWatcher(feed, func(ctx context.Context) ([]*models.JobListing, error) {
		return nil, errors.New("backend not configured")
	})
	watcher.Start(context.Background())
	defer watcher.Stop()

	ctrl := NewLiveController(watcher, feed, nil, zerolog.Nop())
	defer ctrl.Stop()

	router := gin.New()
	router.GET("/jobs/live", ctrl.Listings)

	req := httptest.NewRequest(http.MethodGet, "/jobs/live", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	for _, demo := range live.DemoListings() {
		assert.Contains(t, w.Body.String(), demo.Title)
	}
}

func TestLiveListingsFollowsFeed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	feed := changefeed.New()
	defer feed.Close()

	watcher := newListingsWatcher(feed, func(ctx context.Context) ([]*models.JobListing, error) {
		return []*models.JobListing{}, nil
	})
	watcher.Start(context.Background())
	defer watcher.Stop()

	ctrl := NewLiveController(watcher, feed, nil, zerolog.Nop())
	defer ctrl.Stop()

	router := gin.New()
	router.GET("/jobs/live", ctrl.Listings)

	feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  "job_listings",
		RowID:  42,
		Row:    &models.JobListing{ID: 42, Title: "Platform Intern", Status: models.JobStatusActive},
	})

	require.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, "/jobs/live", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return strings.Contains(w.Body.String(), "Platform Intern")
	}, time.Second, 10*time.Millisecond)
}

type recordingNotifier struct {
	mu        sync.Mutex
	requested bool
	notified  []models.Notification
}

func (n *recordingNotifier) RequestPermission() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requested = true
	return true
}

func (n *recordingNotifier) Notify(notification models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = append(n.notified, notification)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notified)
}

func (n *recordingNotifier) permissionRequested() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.requested
}

// The notification window starts following the feed on first access and
// fires the desktop notifier for events inside it
func TestNotificationsWindowFollowsFeed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	feed := changefeed.New()
	defer feed.Close()

	desktop := &recordingNotifier{}
	ctrl := NewLiveController(nil, feed, func(userID int64) live.DesktopNotifier {
		return desktop
	}, zerolog.Nop())
	defer ctrl.Stop()

	router := gin.New()
	router.GET("/notifications", func(c *gin.Context) {
		c.Set("userID", int64(5))
	}, ctrl.Notifications)

	// First access mounts the view; the window is empty so far
	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  live.NotificationsTable,
		RowID:  5,
		Row: models.Notification{
			Type:      models.NotificationNewApplication,
			Message:   "New application received for Backend Intern",
			CreatedAt: time.Now(),
		},
	})
	// Another user's notification must stay outside the window
	feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  live.NotificationsTable,
		RowID:  6,
		Row: models.Notification{
			Type:      models.NotificationNewMessage,
			Message:   "You have a new message",
			CreatedAt: time.Now(),
		},
	})

	require.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return strings.Contains(w.Body.String(), "Backend Intern")
	}, time.Second, 10*time.Millisecond)

	req = httptest.NewRequest(http.MethodGet, "/notifications", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotContains(t, w.Body.String(), "new message")

	assert.True(t, desktop.permissionRequested())
	require.Eventually(t, func() bool { return desktop.count() == 1 }, time.Second, 10*time.Millisecond)
}
