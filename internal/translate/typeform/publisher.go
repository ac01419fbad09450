// Package typeform publishes forms with a single Typeform create call.
package typeform

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"formsmith/internal/logger"
	"formsmith/internal/model"
	"formsmith/internal/translate"
)

const DefaultBaseURL = "https://api.typeform.com"

// Publisher creates forms on Typeform
type Publisher struct {
	client *translate.Client
	log    *logger.Logger
}

type createFormResponse struct {
	ID    string `json:"id"`
	Links struct {
		Display string `json:"display"`
	} `json:"_links"`
}

// NewPublisher creates a Typeform publisher using a server-side token
func NewPublisher(baseURL, token string, timeout time.Duration, maxRetries int, log *logger.Logger) *Publisher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{
		client: translate.NewClient(translate.ClientConfig{
			Platform:    model.PlatformTypeform,
			BaseURL:     strings.TrimRight(baseURL, "/"),
			Token:       token,
			Timeout:     timeout,
			MaxRetries:  maxRetries,
			ErrorDetail: errorDetail,
		}, log),
		log: log.With("component", "typeform"),
	}
}

func (p *Publisher) Platform() model.Platform { return model.PlatformTypeform }

// Publish creates the form in one call; any failure fails the whole operation
func (p *Publisher) Publish(ctx context.Context, form *model.Form, _ translate.Credentials) (*translate.Result, error) {
	if !p.client.IsConfigured() {
		return nil, translate.NotConfigured(model.PlatformTypeform)
	}

	var resp createFormResponse
	if err := p.client.PostJSON(ctx, "/forms", BuildRequest(form), &resp); err != nil {
		p.log.Error("typeform create failed", "title", form.Title, "error", err)
		return nil, err
	}

	p.log.Info("typeform created", "id", resp.ID, "url", resp.Links.Display)
	return &translate.Result{ID: resp.ID, URL: resp.Links.Display}, nil
}

// errorDetail reads the description from a Typeform error payload
func errorDetail(body []byte) string {
	var payload struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Description != "" {
		return payload.Description
	}
	return strings.TrimSpace(string(body))
}
