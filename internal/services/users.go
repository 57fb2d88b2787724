package services

import (
	"context"
	"errors"

	"warbler/internal/models"
	"warbler/pkg/utils"

	"gorm.io/gorm"
)

// ProfileUpdate carries the fields a user may change about themselves.
// Password is the current password, required to apply the update.
type ProfileUpdate struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
	Password       string
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Signup hashes the password, fills in default images, and inserts the user.
// A username or email collision returns ErrDuplicateUser and leaves the store
// unchanged.
func (s *UserService) Signup(ctx context.Context, username, email, password, imageURL string) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := models.User{
		Username:       username,
		Email:          email,
		PasswordHash:   hashedPassword,
		ImageURL:       imageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
		APIKey:         utils.GenerateAPIKey(),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return &user, nil
}

// Authenticate looks a user up by exact username and verifies the password.
// Unknown user and wrong password both come back as ErrInvalidCredentials so
// callers cannot tell which one failed.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Search returns all users, or those whose username contains the query.
func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	tx := s.db.WithContext(ctx)
	if query != "" {
		tx = tx.Where("username LIKE ?", "%"+query+"%")
	}
	if err := tx.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies profile changes after re-authenticating the actor with their
// current password.
func (s *UserService) Update(ctx context.Context, actor *models.User, changes ProfileUpdate) (*models.User, error) {
	user, err := s.Authenticate(ctx, actor.Username, changes.Password)
	if err != nil {
		return nil, err
	}

	user.Username = changes.Username
	user.Email = changes.Email
	user.Bio = changes.Bio
	user.Location = changes.Location
	if changes.ImageURL != "" {
		user.ImageURL = changes.ImageURL
	}
	if changes.HeaderImageURL != "" {
		user.HeaderImageURL = changes.HeaderImageURL
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return user, nil
}

// Delete removes the user and every row that hangs off them: likes they
// issued, likes on their messages, follow edges in either direction, and
// their messages. One transaction, all or nothing. The schema declares the
// same cascades so postgres enforces them even outside this path.
func (s *UserService) Delete(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("message_id IN (?)",
			tx.Model(&models.Message{}).Select("id").Where("user_id = ?", user.ID),
		).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", user.ID, user.ID).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
}
