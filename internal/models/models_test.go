package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModels(t *testing.T) {
	t.Run("Follow TableName", func(t *testing.T) {
		f := Follow{}
		assert.Equal(t, "follows", f.TableName())
	})

	t.Run("Default image URLs are distinct", func(t *testing.T) {
		assert.NotEqual(t, DefaultImageURL, DefaultHeaderImageURL)
	})
}
