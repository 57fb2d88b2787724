package services

import (
	"context"
	"testing"

	"warbler/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	db.AutoMigrate(&models.User{}, &models.Message{}, &models.Follow{}, &models.Like{}, &models.AuditLog{})
	return db
}

// seedUsers creates the u1/u2 pair most tests start from.
func seedUsers(t *testing.T, db *gorm.DB) (*models.User, *models.User) {
	t.Helper()
	users := NewUserService(db)

	u1, err := users.Signup(context.Background(), "u1", "u1@email.com", "password", "")
	require.NoError(t, err)
	u2, err := users.Signup(context.Background(), "u2", "u2@email.com", "password", "")
	require.NoError(t, err)

	return u1, u2
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
