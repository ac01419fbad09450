package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"formsmith/internal/model"
)

const (
	chatHistoryLimit = 100
	chatTTL          = 7 * 24 * time.Hour
)

// ChatCache keeps the form-building conversation per form
type ChatCache interface {
	Append(ctx context.Context, formID string, msgs ...model.ChatMessage) error
	History(ctx context.Context, formID string) ([]model.ChatMessage, error)
}

type chatCache struct {
	client *redis.Client
	limit  int64
	ttl    time.Duration
}

// NewChatCache creates a Redis list-backed chat history
func NewChatCache(client *redis.Client) ChatCache {
	return &chatCache{
		client: client,
		limit:  chatHistoryLimit,
		ttl:    chatTTL,
	}
}

func (c *chatCache) key(formID string) string {
	return fmt.Sprintf("chat:%s", formID)
}

func (c *chatCache) Append(ctx context.Context, formID string, msgs ...model.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		values = append(values, data)
	}

	key := c.key(formID)
	pipe := c.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, -c.limit, -1)
	pipe.Expire(ctx, key, c.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *chatCache) History(ctx context.Context, formID string) ([]model.ChatMessage, error) {
	items, err := c.client.LRange(ctx, c.key(formID), 0, -1).Result()
	if err == redis.Nil {
		return []model.ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	msgs := make([]model.ChatMessage, 0, len(items))
	for _, item := range items {
		var m model.ChatMessage
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
