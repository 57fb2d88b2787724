package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQRService_ProfileQR(t *testing.T) {
	service := NewQRService()

	t.Run("Generates PNG", func(t *testing.T) {
		data, err := service.ProfileQR("http://localhost:8080", 1, 256)
		assert.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
	})

	t.Run("Zero size falls back to default", func(t *testing.T) {
		data, err := service.ProfileQR("http://localhost:8080", 42, 0)
		assert.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}
