package services

import (
	"context"
	"time"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/repositories"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// MessageService handles direct messages between accounts
type MessageService struct {
	messageRepo *repositories.MessageRepository
	userRepo    *repositories.UserRepository
	feed        *changefeed.Feed
	notifier    *Notifier
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(repos *repositories.Repositories, feed *changefeed.Feed, notifier *Notifier, logger zerolog.Logger) *MessageService {
	return &MessageService{
		messageRepo: repos.MessageRepository,
		userRepo:    repos.UserRepository,
		feed:        feed,
		notifier:    notifier,
		logger:      logger,
	}
}

// Send delivers a message and notifies the receiver
func (s *MessageService) Send(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*models.Message, error) {
	if req.ReceiverID == senderID {
		return nil, apperrors.NewBadRequestError("cannot message yourself")
	}

	receiver, err := s.userRepo.GetByID(ctx, req.ReceiverID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to look up receiver", err)
	}
	if receiver == nil {
		return nil, apperrors.ErrUserNotFound
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to look up sender", err)
	}
	if sender == nil {
		return nil, apperrors.ErrUserNotFound
	}

	msg := &models.Message{
		SenderID:      senderID,
		ReceiverID:    req.ReceiverID,
		ApplicationID: req.ApplicationID,
		Subject:       req.Subject,
		Content:       req.Content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, apperrors.NewDatabaseError("failed to create message", err)
	}
	msg.Sender = sender
	msg.Receiver = receiver

	s.logger.Info().
		Int64("messageID", msg.ID).
		Int64("senderID", senderID).
		Int64("receiverID", req.ReceiverID).
		Msg("Message sent")

	s.feed.Publish(changefeed.Event{
		Action: changefeed.ActionInsert,
		Table:  "messages",
		RowID:  msg.ID,
		Row:    msg,
	})
	s.notifier.NewMessage(req.ReceiverID, sender.Name)

	return msg, nil
}

// Inbox retrieves every message the user sent or received, newest first
func (s *MessageService) Inbox(ctx context.Context, userID int64) ([]*models.Message, error) {
	msgs, err := s.messageRepo.GetForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve messages", err)
	}
	return msgs, nil
}

// Conversation retrieves the two-party thread with another user in
// chronological order, marking received messages as read
func (s *MessageService) Conversation(ctx context.Context, userID, otherUserID int64) (*dto.ConversationResponse, error) {
	other, err := s.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to look up user", err)
	}
	if other == nil {
		return nil, apperrors.ErrUserNotFound
	}

	msgs, err := s.messageRepo.GetConversation(ctx, userID, otherUserID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to retrieve conversation", err)
	}

	unread := 0
	for _, msg := range msgs {
		if msg.ReceiverID == userID && !msg.IsRead {
			unread++
		}
	}

	if unread > 0 {
		if err := s.messageRepo.MarkConversationRead(ctx, userID, otherUserID); err != nil {
			// Read receipts are best effort, the thread still renders
			s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to mark conversation read")
		}
	}

	otherResp := dto.FromUser(other)
	return &dto.ConversationResponse{
		OtherUserID: otherUserID,
		OtherUser:   &otherResp,
		Messages:    dto.FromMessages(msgs),
		UnreadCount: unread,
	}, nil
}

// MarkRead flips one received message to read
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID int64) error {
	if err := s.messageRepo.MarkRead(ctx, messageID, userID); err != nil {
		return apperrors.NewDatabaseError("failed to mark message read", err)
	}
	return nil
}

// UnreadCount returns how many received messages are still unread
func (s *MessageService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	count, err := s.messageRepo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, apperrors.NewDatabaseError("failed to count unread messages", err)
	}
	return count, nil
}

// DemoConversation is one canned thread backing the chat widget when no
// real counterpart exists yet
type DemoConversation struct {
	ID          int64     `json:"id"`
	ContactName string    `json:"contactName"`
	Company     string    `json:"company"`
	LastMessage string    `json:"lastMessage"`
	LastAt      time.Time `json:"lastAt"`
	Messages    []string  `json:"messages"`
}

// DemoConversations returns the fixed chat dataset
func (s *MessageService) DemoConversations() []DemoConversation {
	base := time.Now().Add(-2 * time.Hour)
	return []DemoConversation{
		{
			ID:          1,
			ContactName: "Sarah Chen",
			Company:     "TechStart Inc.",
			LastMessage: "Thanks for your application! When are you available for a quick call?",
			LastAt:      base,
			Messages: []string{
				"Hi! I reviewed your application for the Frontend Developer internship.",
				"Your portfolio looks great. We would like to move forward.",
				"Thanks for your application! When are you available for a quick call?",
			},
		},
		{
			ID:          2,
			ContactName: "Miguel Alvarez",
			Company:     "DataWorks",
			LastMessage: "The team was impressed with your SQL assessment.",
			LastAt:      base.Add(30 * time.Minute),
			Messages: []string{
				"Hello, thanks for applying to our Data Analyst internship.",
				"The team was impressed with your SQL assessment.",
			},
		},
		{
			ID:          3,
			ContactName: "Priya Nair",
			Company:     "GreenField Labs",
			LastMessage: "We will get back to you by Friday.",
			LastAt:      base.Add(45 * time.Minute),
			Messages: []string{
				"Your application is under review.",
				"We will get back to you by Friday.",
			},
		},
	}
}
