package repository

import (
	"context"
	"time"

	"atelier/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct-message data operations
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	Conversation(ctx context.Context, userID, otherID uint, limit, offset int) ([]*models.Message, error)
	Counterparts(ctx context.Context, userID uint) ([]uint, error)
	LatestBetween(ctx context.Context, userID, otherID uint) (*models.Message, error)
	UnreadCount(ctx context.Context, userID, otherID uint) (int64, error)
	MarkRead(ctx context.Context, userID, otherID uint) error
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// Conversation returns the two-party history: both ordered pairs of
// (userID, otherID), chronological ascending.
func (r *messageRepository) Conversation(ctx context.Context, userID, otherID uint, limit, offset int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID,
		).
		Preload("Sender").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Fetched DESC to get the latest page; the client expects ASC.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// Counterparts returns the distinct user IDs this user has exchanged messages
// with, most recent conversation first.
func (r *messageRepository) Counterparts(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Raw(`SELECT other_id FROM (
			SELECT CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS other_id,
			       MAX(created_at) AS last_at
			FROM messages
			WHERE sender_id = ? OR receiver_id = ?
			GROUP BY other_id
		) t ORDER BY last_at DESC`, userID, userID, userID).
		Scan(&ids).Error
	return ids, err
}

func (r *messageRepository) LatestBetween(ctx context.Context, userID, otherID uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID,
		).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) UnreadCount(ctx context.Context, userID, otherID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", otherID, userID).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) MarkRead(ctx context.Context, userID, otherID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", otherID, userID).
		Update("read_at", time.Now().UTC()).Error
}
