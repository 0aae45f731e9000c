package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/internlink/internlink/internal/app/services"
	"github.com/internlink/internlink/internal/middleware"
	"github.com/rs/zerolog"
)

// MessageController handles direct messaging operations
type MessageController struct {
	messageService *services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// Send delivers a message to another user
// @Summary Send a message
// @Description Sends a direct message, optionally tied to an application; the receiver is notified
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Message data"
// @Success 201 {object} dto.StructuredResponse{data=dto.MessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or self-addressed message"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Receiver not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid send message payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	msg, err := c.messageService.Send(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("receiverID", req.ReceiverID).Int64("senderID", userID).Msg("Failed to send message")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromMessage(msg), "Message sent"))
}

// Inbox lists the caller's messages
// @Summary List my messages
// @Description Returns every message the caller sent or received, newest first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.MessageResponse} "Messages"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages [get]
func (c *MessageController) Inbox(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	msgs, err := c.messageService.Inbox(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list messages")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromMessages(msgs), "Messages retrieved"))
}

// Conversation returns the thread with one other user
// @Summary Get a conversation
// @Description Returns the two-party thread in chronological order and marks received messages as read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other user ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.ConversationResponse} "Conversation"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages/conversations/{userId} [get]
func (c *MessageController) Conversation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	otherUserID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	conversation, err := c.messageService.Conversation(ctx.Request.Context(), userID, otherUserID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("otherUserID", otherUserID).Int64("userID", userID).Msg("Failed to load conversation")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(conversation, "Conversation retrieved"))
}

// MarkRead flags one received message as read
// @Summary Mark a message as read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.StructuredResponse "Message marked as read"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages/{id}/read [post]
func (c *MessageController) MarkRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	messageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.messageService.MarkRead(ctx.Request.Context(), userID, messageID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Message marked as read"))
}

// UnreadCount returns the number of unread messages
// @Summary Count unread messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=map[string]int64} "Unread count"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /messages/unread-count [get]
func (c *MessageController) UnreadCount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	count, err := c.messageService.UnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(map[string]int64{"unreadCount": count}, "Unread count retrieved"))
}

// DemoConversations returns the canned chat dataset
// @Summary Demo conversations
// @Description Returns fixed sample threads backing the chat widget before any real conversation exists
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]services.DemoConversation} "Demo conversations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /messages/demo [get]
func (c *MessageController) DemoConversations(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(c.messageService.DemoConversations(), "Demo conversations retrieved"))
}
