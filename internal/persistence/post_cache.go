package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/domain"
)

const (
	postListKey   = "posts:list"
	postKeyPrefix = "posts:id:"
	postCacheTTL  = 5 * time.Minute
)

// PostCache is a Redis-backed read cache for the public post endpoints.
// Misses and Redis failures are both treated as cache misses; the store
// stays the source of truth.
type PostCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewPostCache builds a cache on top of the shared Redis client.
func NewPostCache(r *Redis, logger *zap.Logger) *PostCache {
	if r == nil {
		return &PostCache{logger: logger}
	}
	return &PostCache{client: r.Client, logger: logger}
}

// GetList returns the cached post listing, if present.
func (c *PostCache) GetList(ctx context.Context) ([]domain.Post, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, postListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("post list cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, false
	}
	return posts, true
}

// SetList stores the post listing.
func (c *PostCache) SetList(ctx context.Context, posts []domain.Post) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, postListKey, raw, postCacheTTL).Err(); err != nil {
		c.logger.Debug("post list cache write failed", zap.Error(err))
	}
}

// GetPost returns a cached post by ID, if present.
func (c *PostCache) GetPost(ctx context.Context, id string) (*domain.Post, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, postKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("post cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var post domain.Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil, false
	}
	return &post, true
}

// SetPost stores a single post.
func (c *PostCache) SetPost(ctx context.Context, post *domain.Post) {
	if c == nil || c.client == nil || post == nil {
		return
	}
	raw, err := json.Marshal(post)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, postKeyPrefix+post.ID, raw, postCacheTTL).Err(); err != nil {
		c.logger.Debug("post cache write failed", zap.Error(err))
	}
}

// Invalidate drops the listing and the given post entries after a mutation.
func (c *PostCache) Invalidate(ctx context.Context, ids ...string) {
	if c == nil || c.client == nil {
		return
	}
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, postListKey)
	for _, id := range ids {
		keys = append(keys, postKeyPrefix+id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Debug("post cache invalidation failed", zap.Error(err))
	}
}
