package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"formsmith/internal/model"
)

// PublishStatusCache holds the latest publish state per form and platform
type PublishStatusCache interface {
	Set(ctx context.Context, status *model.PublishStatus) error
	// Get returns nil, nil when nothing was published yet
	Get(ctx context.Context, formID string, platform model.Platform) (*model.PublishStatus, error)
}

type publishStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPublishStatusCache creates a new publish status cache
func NewPublishStatusCache(client *redis.Client) PublishStatusCache {
	return &publishStatusCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *publishStatusCache) key(formID string, platform model.Platform) string {
	return fmt.Sprintf("publish:%s:%s", formID, platform)
}

func (c *publishStatusCache) Set(ctx context.Context, status *model.PublishStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(status.FormID, status.Platform), data, c.ttl).Err()
}

func (c *publishStatusCache) Get(ctx context.Context, formID string, platform model.Platform) (*model.PublishStatus, error) {
	data, err := c.client.Get(ctx, c.key(formID, platform)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var status model.PublishStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil, err
	}
	return &status, nil
}
