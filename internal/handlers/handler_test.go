package handlers

import (
	"log/slog"
	"os"

	"warbler/internal/config"
	"warbler/internal/models"
	"warbler/internal/services"
	"warbler/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func setupTestHandler() (*Handler, *gorm.DB) {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	db.AutoMigrate(&models.User{}, &models.Message{}, &models.Follow{}, &models.Like{}, &models.AuditLog{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SessionSecret: "test-secret-12345678901234567890123456789012",
		BaseURL:       "http://localhost:8080",
		DisableCSRF:   true,
	}

	users := services.NewUserService(db)
	social := services.NewSocialService(db)
	messages := services.NewMessageService(db)
	likes := services.NewLikeService(db)
	audit := services.NewAuditService(db, logger)
	qr := services.NewQRService()

	// Use a dummy redis client (not connected) with no retries
	rdb := redis.NewClient(&redis.Options{
		Addr:       "localhost:1",
		MaxRetries: -1,
	})

	h := NewHandler(cfg, logger, rdb, users, social, messages, likes, audit, qr)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil, "../../web/templates/*.html", "../../web/static")
}

// createUser seeds a user directly; the password is always "password123".
func createUser(db *gorm.DB, username string) models.User {
	hash, _ := utils.HashPassword("password123")
	user := models.User{
		Username:       username,
		Email:          username + "@example.com",
		PasswordHash:   hash,
		ImageURL:       models.DefaultImageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
		APIKey:         "api-key-" + username,
	}
	db.Create(&user)
	return user
}
