package websocket

import (
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/changefeed"
)

// DesktopPush delivers one user's desktop-style notifications over the
// feed hub, standing in for a browser notification API. The notification
// view fires it only for notifications inside its window.
type DesktopPush struct {
	hub    *Hub
	userID int64
}

// NewDesktopPush creates a pusher for one user's connections
func NewDesktopPush(hub *Hub, userID int64) *DesktopPush {
	return &DesktopPush{hub: hub, userID: userID}
}

// RequestPermission always grants; connecting a feed client is the opt-in
func (p *DesktopPush) RequestPermission() bool {
	return true
}

// Notify pushes the notification to the user's open connections
func (p *DesktopPush) Notify(n models.Notification) {
	p.hub.SendToUser(p.userID, &FeedMessage{
		Table:     "desktop_notifications",
		Action:    string(changefeed.ActionInsert),
		RowID:     p.userID,
		Row:       n,
		Timestamp: time.Now(),
	})
}
