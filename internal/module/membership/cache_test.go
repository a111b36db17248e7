package membership

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("miss then hit", func(t *testing.T) {
		c := NewMemoryCache()

		_, err := c.Members(ctx, projectID)
		assert.ErrorIs(t, err, ErrCacheMiss)

		members := []uuid.UUID{uuid.New(), uuid.New()}
		require.NoError(t, c.SetMembers(ctx, projectID, 0, members, time.Minute))

		got, err := c.Members(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, members, got)
	})

	t.Run("empty set is cached", func(t *testing.T) {
		c := NewMemoryCache()
		require.NoError(t, c.SetMembers(ctx, projectID, 0, nil, time.Minute))

		got, err := c.Members(ctx, projectID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("expires", func(t *testing.T) {
		c := NewMemoryCache().(*memoryCache)
		now := time.Now()
		c.now = func() time.Time { return now }
		require.NoError(t, c.SetMembers(ctx, projectID, 0, []uuid.UUID{uuid.New()}, time.Minute))

		c.now = func() time.Time { return now.Add(2 * time.Minute) }
		_, err := c.Members(ctx, projectID)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("invalidate", func(t *testing.T) {
		c := NewMemoryCache()
		require.NoError(t, c.SetMembers(ctx, projectID, 0, []uuid.UUID{uuid.New()}, 0))
		require.NoError(t, c.Invalidate(ctx, projectID))

		_, err := c.Members(ctx, projectID)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("write after invalidation is refused", func(t *testing.T) {
		c := NewMemoryCache()
		gen, err := c.Generation(ctx, projectID)
		require.NoError(t, err)

		require.NoError(t, c.Invalidate(ctx, projectID))
		err = c.SetMembers(ctx, projectID, gen, []uuid.UUID{uuid.New()}, time.Minute)
		assert.ErrorIs(t, err, ErrStaleGeneration)

		_, err = c.Members(ctx, projectID)
		assert.ErrorIs(t, err, ErrCacheMiss)

		gen, err = c.Generation(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), gen)
		require.NoError(t, c.SetMembers(ctx, projectID, gen, nil, time.Minute))
	})
}

func TestMembersKey(t *testing.T) {
	id := uuid.MustParse("7b0f3c2e-4a57-4c8e-9d1f-0a6b5e2c9d11")
	assert.Equal(t, "membership:project:7b0f3c2e-4a57-4c8e-9d1f-0a6b5e2c9d11:members", membersKey(id))
	assert.Equal(t, "membership:project:7b0f3c2e-4a57-4c8e-9d1f-0a6b5e2c9d11:gen", generationKey(id))
}
