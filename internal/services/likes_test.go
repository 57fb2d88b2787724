package services

import (
	"context"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_RoundTrip(t *testing.T) {
	db := setupTestDB()
	messages := NewMessageService(db)
	likes := NewLikeService(db)
	ctx := context.Background()

	u1, u2 := seedUsers(t, db)
	m1, err := messages.Create(ctx, u2, "likeable")
	require.NoError(t, err)

	t.Run("Not liked initially", func(t *testing.T) {
		liked, err := likes.IsLikedBy(ctx, m1, u1)
		require.NoError(t, err)
		assert.False(t, liked)
	})

	t.Run("Like toggles on", func(t *testing.T) {
		require.NoError(t, likes.Like(ctx, u1, m1))

		liked, err := likes.IsLikedBy(ctx, m1, u1)
		require.NoError(t, err)
		assert.True(t, liked)

		count, err := likes.LikeCount(ctx, m1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Repeat like is a no-op", func(t *testing.T) {
		require.NoError(t, likes.Like(ctx, u1, m1))
		count, err := likes.LikeCount(ctx, m1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Unlike restores prior count", func(t *testing.T) {
		require.NoError(t, likes.Unlike(ctx, u1, m1))

		liked, err := likes.IsLikedBy(ctx, m1, u1)
		require.NoError(t, err)
		assert.False(t, liked)

		count, err := likes.LikeCount(ctx, m1)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Unlike of missing edge is a no-op", func(t *testing.T) {
		assert.NoError(t, likes.Unlike(ctx, u1, m1))
	})
}

func TestLikeService_BothDirections(t *testing.T) {
	db := setupTestDB()
	messages := NewMessageService(db)
	likes := NewLikeService(db)
	ctx := context.Background()

	u1, u2 := seedUsers(t, db)
	m1, err := messages.Create(ctx, u1, "first")
	require.NoError(t, err)
	m2, err := messages.Create(ctx, u1, "second")
	require.NoError(t, err)

	require.NoError(t, likes.Like(ctx, u2, m1))
	require.NoError(t, likes.Like(ctx, u2, m2))
	require.NoError(t, likes.Like(ctx, u1, m2))

	likers, err := likes.Likers(ctx, m2)
	require.NoError(t, err)
	assert.Len(t, likers, 2)

	liked, err := likes.LikedBy(ctx, u2)
	require.NoError(t, err)
	require.Len(t, liked, 2)
	for _, m := range liked {
		assert.NotNil(t, m.User)
	}

	ids, err := likes.LikedMessageIDs(ctx, u2)
	require.NoError(t, err)
	assert.True(t, ids[m1.ID])
	assert.True(t, ids[m2.ID])
	assert.False(t, ids[9999])
}

func TestLikeService_MessageCascade(t *testing.T) {
	db := setupTestDB()
	messages := NewMessageService(db)
	likes := NewLikeService(db)
	ctx := context.Background()

	u1, u2 := seedUsers(t, db)
	m1, err := messages.Create(ctx, u1, "short lived")
	require.NoError(t, err)
	require.NoError(t, likes.Like(ctx, u2, m1))

	require.NoError(t, messages.Delete(ctx, m1, u1))

	assert.Zero(t, countRows(t, db, &models.Like{}))
}
