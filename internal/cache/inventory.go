package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// PostsPageKeyPrefix caches one page of the public post listing.
	PostsPageKeyPrefix = "gitwise:posts:page:%d:per:%d"

	postsPagePattern = "gitwise:posts:page:*"
)

// ListTTL bounds how stale a cached public page may be.
const ListTTL = 2 * time.Minute

// PostsPageKey returns the cache key for one public listing page.
func PostsPageKey(page, perPage int) string {
	return fmt.Sprintf(PostsPageKeyPrefix, page, perPage)
}

// InvalidatePostPages drops every cached listing page. Called after
// any post mutation so cached pages never show deleted or stale posts.
func InvalidatePostPages(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, postsPagePattern, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
