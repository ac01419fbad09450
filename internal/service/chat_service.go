package service

import (
	"context"
	"strings"
	"time"

	"formsmith/internal/cache"
	"formsmith/internal/model"
)

// ChatService exposes the per-form conversation history
type ChatService struct {
	chat  cache.ChatCache
	forms *FormService
}

// NewChatService creates a new chat service
func NewChatService(chat cache.ChatCache, forms *FormService) *ChatService {
	return &ChatService{chat: chat, forms: forms}
}

// Append adds a message to an owned form's history
func (s *ChatService) Append(ctx context.Context, ownerID, formID string, msg model.ChatMessage) (*model.ChatMessage, error) {
	if _, err := s.forms.GetOwned(ctx, formID, ownerID); err != nil {
		return nil, err
	}
	if msg.Role != model.ChatRoleUser && msg.Role != model.ChatRoleAssistant {
		return nil, &ValidationError{Field: "role", Message: "must be user or assistant"}
	}
	if strings.TrimSpace(msg.Content) == "" {
		return nil, &ValidationError{Field: "content", Message: "is required"}
	}
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}

	if err := s.chat.Append(ctx, formID, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// History returns an owned form's history, oldest first
func (s *ChatService) History(ctx context.Context, ownerID, formID string) ([]model.ChatMessage, error) {
	if _, err := s.forms.GetOwned(ctx, formID, ownerID); err != nil {
		return nil, err
	}
	return s.chat.History(ctx, formID)
}
