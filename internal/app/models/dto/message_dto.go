package dto

import (
	"time"

	"github.com/internlink/internlink/internal/app/models"
)

// SendMessageRequest represents a new message
type SendMessageRequest struct {
	ReceiverID    int64   `json:"receiverId" binding:"required,min=1"`
	Content       string  `json:"content" binding:"required"`
	Subject       *string `json:"subject,omitempty"`
	ApplicationID *int64  `json:"applicationId,omitempty"`
}

// MessageResponse represents message information
type MessageResponse struct {
	ID            int64         `json:"id"`
	SenderID      int64         `json:"senderId"`
	ReceiverID    int64         `json:"receiverId"`
	ApplicationID *int64        `json:"applicationId,omitempty"`
	Subject       *string       `json:"subject,omitempty"`
	Content       string        `json:"content"`
	IsRead        bool          `json:"isRead"`
	SentAt        time.Time     `json:"sentAt"`
	Sender        *UserResponse `json:"sender,omitempty"`
	Receiver      *UserResponse `json:"receiver,omitempty"`
}

// ConversationResponse represents the two-party thread with one other user,
// messages in chronological order
type ConversationResponse struct {
	OtherUserID int64             `json:"otherUserId"`
	OtherUser   *UserResponse     `json:"otherUser,omitempty"`
	Messages    []MessageResponse `json:"messages"`
	UnreadCount int               `json:"unreadCount"`
}

// FromMessage converts a models.Message to a MessageResponse
func FromMessage(msg *models.Message) MessageResponse {
	resp := MessageResponse{
		ID:            msg.ID,
		SenderID:      msg.SenderID,
		ReceiverID:    msg.ReceiverID,
		ApplicationID: msg.ApplicationID,
		Subject:       msg.Subject,
		Content:       msg.Content,
		IsRead:        msg.IsRead,
		SentAt:        msg.SentAt,
	}
	if msg.Sender != nil {
		sender := FromUser(msg.Sender)
		resp.Sender = &sender
	}
	if msg.Receiver != nil {
		receiver := FromUser(msg.Receiver)
		resp.Receiver = &receiver
	}
	return resp
}

// FromMessages converts a slice of messages
func FromMessages(msgs []*models.Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		responses = append(responses, FromMessage(msg))
	}
	return responses
}
