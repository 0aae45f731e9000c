package repositories

import (
	"context"
	"fmt"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/db"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/dberrors"
)

// MessageRepository handles message database operations
type MessageRepository struct {
	db db.Querier
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db db.Querier) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, sender_id, receiver_id, application_id, subject, content,
		is_read, sent_at, created_at`

func scanMessage(row interface{ Scan(dest ...any) error }) (*models.Message, error) {
	var msg models.Message
	err := row.Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.ReceiverID,
		&msg.ApplicationID,
		&msg.Subject,
		&msg.Content,
		&msg.IsRead,
		&msg.SentAt,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Create inserts a message and sets its generated ID and sent time
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (sender_id, receiver_id, application_id, subject, content, is_read, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, false, NOW(), NOW())
		RETURNING id, sent_at
	`

	err := r.db.QueryRow(ctx, query,
		msg.SenderID, msg.ReceiverID, msg.ApplicationID, msg.Subject, msg.Content,
	).Scan(&msg.ID, &msg.SentAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating message: %w", err)
	}

	return nil
}

// GetByID retrieves a message. Absence of a row is a nil result.
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	msg, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving message: %w", err)
	}
	return msg, nil
}

// GetForUser retrieves every message a user sent or received, newest first
func (r *MessageRepository) GetForUser(ctx context.Context, userID int64) ([]*models.Message, error) {
	query := `SELECT ` + messageColumns + `
		FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY sent_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var msgs []*models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return msgs, nil
}

// GetConversation retrieves the two-party thread in chronological order
func (r *MessageRepository) GetConversation(ctx context.Context, userID, otherUserID int64) ([]*models.Message, error) {
	query := `SELECT ` + messageColumns + `
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY sent_at ASC`

	rows, err := r.db.Query(ctx, query, userID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var msgs []*models.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return msgs, nil
}

// MarkRead flips the read flag. The flag only ever moves false to true,
// so already-read messages are left untouched.
func (r *MessageRepository) MarkRead(ctx context.Context, messageID, receiverID int64) error {
	query := `
		UPDATE messages
		SET is_read = true
		WHERE id = $1 AND receiver_id = $2 AND is_read = false
	`

	_, err := r.db.Exec(ctx, query, messageID, receiverID)
	if err != nil {
		return fmt.Errorf("error marking message read: %w", err)
	}
	return nil
}

// MarkConversationRead marks every unread message from one sender as read
func (r *MessageRepository) MarkConversationRead(ctx context.Context, receiverID, senderID int64) error {
	query := `
		UPDATE messages
		SET is_read = true
		WHERE receiver_id = $1 AND sender_id = $2 AND is_read = false
	`

	_, err := r.db.Exec(ctx, query, receiverID, senderID)
	if err != nil {
		return fmt.Errorf("error marking conversation read: %w", err)
	}
	return nil
}

// UnreadCount returns how many received messages are still unread
func (r *MessageRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = false`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}
	return count, nil
}
