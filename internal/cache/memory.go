package cache

import (
	"context"
	"sync"

	"formsmith/internal/model"
)

// In-memory caches for tests and the CLI. TTLs are not enforced.

type memoryChatCache struct {
	mu    sync.Mutex
	limit int
	chats map[string][]model.ChatMessage
}

func NewMemoryChatCache() ChatCache {
	return &memoryChatCache{limit: chatHistoryLimit, chats: make(map[string][]model.ChatMessage)}
}

func (c *memoryChatCache) Append(ctx context.Context, formID string, msgs ...model.ChatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := append(c.chats[formID], msgs...)
	if len(h) > c.limit {
		h = append([]model.ChatMessage(nil), h[len(h)-c.limit:]...)
	}
	c.chats[formID] = h
	return nil
}

func (c *memoryChatCache) History(ctx context.Context, formID string) ([]model.ChatMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.ChatMessage{}, c.chats[formID]...), nil
}

type memoryPublishStatusCache struct {
	mu       sync.RWMutex
	statuses map[string]model.PublishStatus
}

func NewMemoryPublishStatusCache() PublishStatusCache {
	return &memoryPublishStatusCache{statuses: make(map[string]model.PublishStatus)}
}

func (c *memoryPublishStatusCache) Set(ctx context.Context, status *model.PublishStatus) error {
	c.mu.Lock()
	c.statuses[status.FormID+":"+string(status.Platform)] = *status
	c.mu.Unlock()
	return nil
}

func (c *memoryPublishStatusCache) Get(ctx context.Context, formID string, platform model.Platform) (*model.PublishStatus, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.statuses[formID+":"+string(platform)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}
