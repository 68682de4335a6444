package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	previewKeyPrefix = "preview:"

	// DefaultPreviewTTL is how long a looked-up image URL stays cached.
	DefaultPreviewTTL = 24 * time.Hour
)

// PreviewCache stores the preview image URL found for an external link. An
// empty value records a link without an image so it is not fetched again.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPreviewCache(client *redis.Client, ttl time.Duration) *PreviewCache {
	if ttl == 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewCache{client: client, ttl: ttl}
}

// Get returns the cached image URL for link and whether there was an entry.
func (pc *PreviewCache) Get(ctx context.Context, link string) (string, bool) {
	val, err := pc.client.Get(ctx, previewKeyPrefix+link).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		slog.Warn("preview cache get error", "link", link, "error", err)
		return "", false
	}
	return val, true
}

func (pc *PreviewCache) Set(ctx context.Context, link, imageURL string) {
	if err := pc.client.Set(ctx, previewKeyPrefix+link, imageURL, pc.ttl).Err(); err != nil {
		slog.Warn("preview cache set error", "link", link, "error", err)
	}
}
