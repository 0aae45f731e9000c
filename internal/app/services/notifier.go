package services

import (
	"fmt"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/changefeed"
)

// NotificationsTable is the pseudo-table notifications are published
// under. Notifications are not persisted: the feed is their only channel
// and the live view keeps a bounded window of them.
const NotificationsTable = "notifications"

// Notifier derives per-user notifications from domain mutations and
// pushes them onto the change feed. RowID carries the target user so
// subscribers can filter to their own stream.
type Notifier struct {
	feed *changefeed.Feed
}

// NewNotifier creates a new Notifier
func NewNotifier(feed *changefeed.Feed) *Notifier {
	return &Notifier{feed: feed}
}

func (n *Notifier) push(targetUserID int64, notification models.Notification) {
	n.feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  NotificationsTable,
		RowID:  targetUserID,
		Row:    notification,
	})
}

// NewApplication notifies the employer account that owns the listing
func (n *Notifier) NewApplication(employerUserID int64, jobTitle string, app *models.Application) {
	n.push(employerUserID, models.Notification{
		Type:      models.NotificationNewApplication,
		Message:   fmt.Sprintf("New application received for %s", jobTitle),
		Data:      app,
		CreatedAt: time.Now(),
	})
}

// StatusChange notifies the intern that an application moved
func (n *Notifier) StatusChange(internUserID int64, jobTitle string, status models.ApplicationStatus) {
	n.push(internUserID, models.Notification{
		Type:      models.NotificationStatusChange,
		Message:   fmt.Sprintf("Your application for %s is now %s", jobTitle, status),
		CreatedAt: time.Now(),
	})
}

// NewMessage notifies the receiver of an incoming message
func (n *Notifier) NewMessage(receiverUserID int64, senderName string) {
	n.push(receiverUserID, models.Notification{
		Type:      models.NotificationNewMessage,
		Message:   fmt.Sprintf("New message from %s", senderName),
		CreatedAt: time.Now(),
	})
}
