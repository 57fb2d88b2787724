package services

import (
	"context"
	"errors"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// LikeService manages the many-to-many like relationship between users and
// messages.
type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// Like records that the user likes the message. Liking twice is a no-op.
func (s *LikeService) Like(ctx context.Context, user *models.User, message *models.Message) error {
	edge := models.Like{UserID: user.ID, MessageID: message.ID}
	if err := s.db.WithContext(ctx).Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

// Unlike removes the like if present; a missing edge is a no-op.
func (s *LikeService) Unlike(ctx context.Context, user *models.User, message *models.Message) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", user.ID, message.ID).
		Delete(&models.Like{}).Error
}

func (s *LikeService) IsLikedBy(ctx context.Context, message *models.Message, user *models.User) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", user.ID, message.ID).
		Count(&count).Error
	return count > 0, err
}

// LikeCount returns the number of likes on a message.
func (s *LikeService) LikeCount(ctx context.Context, message *models.Message) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("message_id = ?", message.ID).
		Count(&count).Error
	return count, err
}

// Likers returns the users who like the message.
func (s *LikeService) Likers(ctx context.Context, message *models.Message) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.message_id = ?", message.ID).
		Find(&users).Error
	return users, err
}

// LikedBy returns the messages the user likes, newest first.
func (s *LikeService) LikedBy(ctx context.Context, user *models.User) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", user.ID).
		Order("messages.timestamp desc").
		Preload("User").
		Find(&messages).Error
	return messages, err
}

// LikedMessageIDs returns the set of message ids the user likes, for cheap
// membership checks when rendering timelines.
func (s *LikeService) LikedMessageIDs(ctx context.Context, user *models.User) (map[uint]bool, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", user.ID).
		Pluck("message_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
