package models

import (
	"time"
)

// Message defines the message model based on the 'messages' table.
// The read flag only ever transitions false to true.
type Message struct {
	ID            int64     `json:"id" db:"id"`
	SenderID      int64     `json:"senderId" db:"sender_id"`
	ReceiverID    int64     `json:"receiverId" db:"receiver_id"`
	ApplicationID *int64    `json:"applicationId,omitempty" db:"application_id"` // Optional application context
	Subject       *string   `json:"subject,omitempty" db:"subject"`
	Content       string    `json:"content" db:"content"`
	IsRead        bool      `json:"isRead" db:"is_read"`
	SentAt        time.Time `json:"sentAt" db:"sent_at"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	Sender        *User     `json:"sender,omitempty"`   // Relation, no db tag
	Receiver      *User     `json:"receiver,omitempty"` // Relation, no db tag
}
