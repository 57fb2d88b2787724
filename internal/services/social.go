package services

import (
	"context"
	"errors"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// SocialService manages the directed follow graph between users.
type SocialService struct {
	db *gorm.DB
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{db: db}
}

// Follow inserts an edge from follower to followee. Following someone twice
// hits the composite unique index and is treated as a no-op.
func (s *SocialService) Follow(ctx context.Context, follower *models.User, followeeID uint) error {
	var followee models.User
	if err := s.db.WithContext(ctx).First(&followee, followeeID).Error; err != nil {
		return err
	}

	edge := models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
	if err := s.db.WithContext(ctx).Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

// Unfollow removes the edge if present; removing a missing edge is a no-op.
func (s *SocialService) Unfollow(ctx context.Context, follower *models.User, followeeID uint) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", follower.ID, followeeID).
		Delete(&models.Follow{}).Error
}

func (s *SocialService) IsFollowing(ctx context.Context, follower, followee *models.User) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", follower.ID, followee.ID).
		Count(&count).Error
	return count > 0, err
}

func (s *SocialService) IsFollowedBy(ctx context.Context, user, follower *models.User) (bool, error) {
	return s.IsFollowing(ctx, follower, user)
}

// Followers returns the users following the given user.
func (s *SocialService) Followers(ctx context.Context, user *models.User) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", user.ID).
		Find(&users).Error
	return users, err
}

// Following returns the users the given user follows.
func (s *SocialService) Following(ctx context.Context, user *models.User) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", user.ID).
		Find(&users).Error
	return users, err
}
