package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikicli/internal/ports"
)

func openTestCache(t *testing.T, ttl time.Duration) *SQLiteCache {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cache", "articles.sqlite")
	cache, err := Open(path, ttl, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	cache := openTestCache(t, time.Hour)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "en", ports.CacheKindSummary, "Python")
	require.NoError(t, err)
	assert.False(t, ok)

	err = cache.Put(ctx, "en", ports.CacheKindSummary, "Python", ports.CachedArticle{
		Title: "Python",
		Body:  "Python is a programming language.",
	})
	require.NoError(t, err)

	article, ok, err := cache.Get(ctx, "en", ports.CacheKindSummary, "Python")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Python", article.Title)
	assert.Equal(t, "Python is a programming language.", article.Body)

	// Other languages and kinds are separate entries.
	_, ok, err = cache.Get(ctx, "es", ports.CacheKindSummary, "Python")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = cache.Get(ctx, "en", ports.CacheKindContent, "Python")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheUpsertReplacesBody(t *testing.T) {
	t.Parallel()

	cache := openTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "en", ports.CacheKindContent, "python", ports.CachedArticle{
		Title: "Python (programming language)",
		Body:  "old",
	}))
	require.NoError(t, cache.Put(ctx, "en", ports.CacheKindContent, "python", ports.CachedArticle{
		Title: "Python (programming language)",
		Body:  "new",
	}))

	article, ok, err := cache.Get(ctx, "en", ports.CacheKindContent, "python")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", article.Body)
	assert.Equal(t, "Python (programming language)", article.Title)
}

func TestCacheExpiresByTTL(t *testing.T) {
	t.Parallel()

	cache := openTestCache(t, time.Nanosecond)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "en", ports.CacheKindSummary, "Python", ports.CachedArticle{
		Title: "Python",
		Body:  "stale",
	}))

	time.Sleep(10 * time.Millisecond)

	_, ok, err := cache.Get(ctx, "en", ports.CacheKindSummary, "Python")
	require.NoError(t, err)
	assert.False(t, ok)
}
