package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	password := "chirp-chirp-123"

	hash, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEqual(t, password, hash)

	t.Run("Correct password verifies", func(t *testing.T) {
		assert.True(t, CheckPasswordHash(password, hash))
	})

	t.Run("Wrong password fails", func(t *testing.T) {
		assert.False(t, CheckPasswordHash("chirp-chirp-124", hash))
	})

	t.Run("Same password hashes differently", func(t *testing.T) {
		other, err := HashPassword(password)
		assert.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})

	t.Run("Over bcrypt length limit", func(t *testing.T) {
		_, err := HashPassword(strings.Repeat("A", 100))
		assert.Error(t, err)
	})
}
