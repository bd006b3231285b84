package postgres

import (
	"context"
	"errors"

	"teamup-service/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db}
}

func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *MessageRepository) MessagesForMatch(ctx context.Context, matchID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// MarkMessagesRead flags every message in the match that the reader
// did not send. Idempotent.
func (r *MessageRepository) MarkMessagesRead(ctx context.Context, matchID, readerID string) error {
	return r.db.WithContext(ctx).Model(&models.Message{}).
		Where("match_id = ? AND sender_id <> ? AND is_read = false", matchID, readerID).
		Update("is_read", true).Error
}

func (r *MessageRepository) UnreadCount(ctx context.Context, matchID, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("match_id = ? AND sender_id <> ? AND is_read = false", matchID, userID).
		Count(&count).Error
	return count, err
}

func (r *MessageRepository) LastMessage(ctx context.Context, matchID string) (*models.Message, error) {
	var m models.Message
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
