package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"gitwise/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissFetchesAndPopulates(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	fetched := 0
	var posts []models.Post
	err := Aside(ctx, PostsPageKey(1, 6), &posts, ListTTL, func() error {
		fetched++
		posts = []models.Post{{ID: 1, Title: "cached"}}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, fetched)
	require.True(t, mr.Exists(PostsPageKey(1, 6)))

	// second read is served from the cache
	var again []models.Post
	err = Aside(ctx, PostsPageKey(1, 6), &again, ListTTL, func() error {
		fetched++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetched)
	require.Len(t, again, 1)
	assert.Equal(t, "cached", again[0].Title)
}

func TestAside_FetchErrorPropagatesWithoutCaching(t *testing.T) {
	mr := withMiniredis(t)

	var posts []models.Post
	err := Aside(context.Background(), PostsPageKey(1, 6), &posts, ListTTL, func() error {
		return errors.New("backend down")
	})
	require.Error(t, err)
	assert.False(t, mr.Exists(PostsPageKey(1, 6)))
}

func TestAside_DisabledCacheAlwaysFetches(t *testing.T) {
	SetClient(nil)

	fetched := 0
	var posts []models.Post
	for i := 0; i < 2; i++ {
		err := Aside(context.Background(), PostsPageKey(1, 6), &posts, ListTTL, func() error {
			fetched++
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, fetched)
	assert.False(t, Enabled())
}

func TestInvalidatePostPages(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostsPageKey(1, 6), []models.Post{{ID: 1}}, time.Minute))
	require.NoError(t, SetJSON(ctx, PostsPageKey(2, 6), []models.Post{{ID: 2}}, time.Minute))
	require.NoError(t, SetJSON(ctx, "gitwise:unrelated", "keep", time.Minute))

	InvalidatePostPages(ctx)

	assert.False(t, mr.Exists(PostsPageKey(1, 6)))
	assert.False(t, mr.Exists(PostsPageKey(2, 6)))
	assert.True(t, mr.Exists("gitwise:unrelated"))
}

func TestCacheExpiry(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostsPageKey(1, 6), []models.Post{{ID: 1}}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var posts []models.Post
	found, err := GetJSON(ctx, PostsPageKey(1, 6), &posts)
	require.NoError(t, err)
	assert.False(t, found)
}
