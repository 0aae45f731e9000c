package live

import (
	"sync"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/rs/zerolog"
)

// NotificationsTable is the pseudo-table notification events arrive on.
// The event RowID carries the target user, not a row id.
const NotificationsTable = "notifications"

// notificationCap bounds the live window. Older entries fall off as new
// ones arrive; there is no persistence behind this view.
const notificationCap = 10

// DesktopNotifier mirrors a desktop notification permission flow:
// permission is requested once, and notifications fire only when it was
// granted.
type DesktopNotifier interface {
	RequestPermission() bool
	Notify(n models.Notification)
}

// NotificationView keeps the most recent notifications for one user
type NotificationView struct {
	userID  int64
	feed    *changefeed.Feed
	desktop DesktopNotifier
	logger  zerolog.Logger

	mu            sync.Mutex
	notifications []models.Notification
	sub           *changefeed.Subscription
	started       bool
	wg            sync.WaitGroup
	observers     map[int64]func([]models.Notification)
	nextObsID     int64

	permissionOnce sync.Once
	granted        bool
}

// NewNotificationView creates a stopped view for a user. desktop may be
// nil when no desktop notifier is attached.
func NewNotificationView(userID int64, feed *changefeed.Feed, desktop DesktopNotifier, logger zerolog.Logger) *NotificationView {
	return &NotificationView{
		userID:    userID,
		feed:      feed,
		desktop:   desktop,
		logger:    logger,
		observers: make(map[int64]func([]models.Notification)),
	}
}

// Start subscribes to the user's notification stream. Permission for
// desktop notifications is requested on the first Start only.
func (v *NotificationView) Start() {
	v.mu.Lock()
	if v.started {
		v.mu.Unlock()
		return
	}
	v.started = true
	v.mu.Unlock()

	if v.desktop != nil {
		v.permissionOnce.Do(func() {
			v.granted = v.desktop.RequestPermission()
			v.logger.Debug().Bool("granted", v.granted).Msg("Desktop notification permission requested")
		})
	}

	userID := v.userID
	sub := v.feed.Subscribe(NotificationsTable, func(e changefeed.Event) bool {
		return e.RowID == userID
	})

	v.mu.Lock()
	v.sub = sub
	v.mu.Unlock()

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		for {
			select {
			case <-sub.Done():
				return
			case event := <-sub.Events():
				v.apply(event)
			}
		}
	}()
}

func (v *NotificationView) apply(event changefeed.Event) {
	n, ok := event.Row.(models.Notification)
	if !ok {
		v.logger.Warn().Int64("userId", event.RowID).
			Msg("Notification event carried an unexpected payload")
		return
	}

	v.mu.Lock()
	v.notifications = append([]models.Notification{n}, v.notifications...)
	if len(v.notifications) > notificationCap {
		v.notifications = v.notifications[:notificationCap]
	}
	current := make([]models.Notification, len(v.notifications))
	copy(current, v.notifications)
	observers := make([]func([]models.Notification), 0, len(v.observers))
	for _, obs := range v.observers {
		observers = append(observers, obs)
	}
	v.mu.Unlock()

	for _, obs := range observers {
		obs(current)
	}

	if v.desktop != nil && v.granted {
		v.desktop.Notify(n)
	}
}

// Stop cancels the subscription and waits for the apply goroutine.
// The window survives Stop; a later Start resumes appending to it.
func (v *NotificationView) Stop() {
	v.mu.Lock()
	if !v.started {
		v.mu.Unlock()
		return
	}
	v.started = false
	sub := v.sub
	v.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
	v.wg.Wait()
}

// Notifications returns the current window, newest first
func (v *NotificationView) Notifications() []models.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()

	current := make([]models.Notification, len(v.notifications))
	copy(current, v.notifications)
	return current
}

// OnChange registers an observer for window updates and returns its
// deregistration function
func (v *NotificationView) OnChange(fn func([]models.Notification)) func() {
	v.mu.Lock()
	v.nextObsID++
	id := v.nextObsID
	v.observers[id] = fn
	current := make([]models.Notification, len(v.notifications))
	copy(current, v.notifications)
	v.mu.Unlock()

	fn(current)

	return func() {
		v.mu.Lock()
		delete(v.observers, id)
		v.mu.Unlock()
	}
}
