package models

import (
	"time"
)

// NotificationType classifies a pushed notification
type NotificationType string

const (
	NotificationNewApplication NotificationType = "new_application"
	NotificationStatusChange   NotificationType = "status_change"
	NotificationNewMessage     NotificationType = "new_message"
)

// Notification is a derived event pushed to a user; it is not persisted,
// only delivered over the change feed and kept in a bounded live view.
type Notification struct {
	Type      NotificationType `json:"type" example:"new_application"`
	Message   string           `json:"message" example:"New application received for Backend Intern"`
	Data      interface{}      `json:"data,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
