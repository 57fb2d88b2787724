package services

import (
	"context"
	"strings"
	"time"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// MessageService manages messages. Messages are immutable once posted; the
// only mutation is deletion by their owner.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Create validates and stores a new message for the author.
func (s *MessageService) Create(ctx context.Context, author *models.User, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if len([]rune(text)) > models.MaxMessageLength {
		return nil, ErrTextTooLong
	}

	message := models.Message{
		UserID:    author.ID,
		Text:      text,
		Timestamp: time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, err
	}

	return &message, nil
}

// Get loads a message with its author.
func (s *MessageService) Get(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	err := s.db.WithContext(ctx).Preload("User").First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// Delete removes a message, but only for its owner. Likes on the message go
// with it in the same transaction.
func (s *MessageService) Delete(ctx context.Context, message *models.Message, actor *models.User) error {
	if actor.ID != message.UserID {
		return ErrUnauthorized
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", message.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, message.ID).Error
	})
}

// RecentFor returns up to limit messages authored by any of the given users,
// newest first. Used to build the home timeline.
func (s *MessageService) RecentFor(ctx context.Context, userIDs []uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("timestamp desc, id desc").
		Limit(limit).
		Preload("User").
		Find(&messages).Error
	return messages, err
}

// ByUser returns all of a user's messages, newest first.
func (s *MessageService) ByUser(ctx context.Context, user *models.User) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("timestamp desc, id desc").
		Find(&messages).Error
	return messages, err
}
