package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"formsmith/internal/logger"
	"formsmith/internal/model"
)

// ErrorDetailFunc extracts the human-readable message from an error body
type ErrorDetailFunc func(body []byte) string

// Client wraps bearer-token JSON calls to a platform REST API
type Client struct {
	platform    model.Platform
	baseURL     string
	token       string
	httpClient  *http.Client
	maxRetries  int
	backoffUnit time.Duration
	errorDetail ErrorDetailFunc
	log         *logger.Logger
}

// ClientConfig configures a platform client
type ClientConfig struct {
	Platform    model.Platform
	BaseURL     string
	Token       string
	Timeout     time.Duration
	MaxRetries  int // extra attempts on 429; 0 disables retrying
	ErrorDetail ErrorDetailFunc
}

// NewClient creates a platform API client
func NewClient(cfg ClientConfig, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.ErrorDetail == nil {
		cfg.ErrorDetail = func(body []byte) string { return string(body) }
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Token == "" {
		log.Warn("platform token not set", "platform", cfg.Platform)
	}

	return &Client{
		platform: cfg.Platform,
		baseURL:  cfg.BaseURL,
		token:    cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries:  cfg.MaxRetries,
		backoffUnit: time.Second,
		errorDetail: cfg.ErrorDetail,
		log:         log.With("platform", cfg.Platform),
	}
}

// IsConfigured returns true if the access token is set
func (c *Client) IsConfigured() bool {
	return c.token != ""
}

// Platform returns the platform this client talks to
func (c *Client) Platform() model.Platform {
	return c.platform
}

// PostJSON sends payload as JSON and decodes the response into out
func (c *Client) PostJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &PlatformError{Platform: c.platform, Message: "failed to encode request", Err: err}
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &PlatformError{Platform: c.platform, Message: "failed to parse response", Err: err}
	}
	return nil
}

// doRequest performs the HTTP request, backing off on 429 while retries remain
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	url := c.baseURL + path
	c.log.Debug("platform request", "method", method, "path", path)

	var lastErr *PlatformError
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * c.backoffUnit
			c.log.Warn("rate limited, retrying", "attempt", attempt, "max", c.maxRetries, "backoff", backoff)
			select {
			case <-ctx.Done():
				return nil, &PlatformError{Platform: c.platform, Message: "request cancelled", Err: ctx.Err()}
			case <-time.After(backoff):
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, &PlatformError{Platform: c.platform, Message: "failed to create request", Err: err}
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Error("platform request failed", "method", method, "path", path, "error", err)
			return nil, &PlatformError{Platform: c.platform, Message: "request failed", Err: err}
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, &PlatformError{Platform: c.platform, Status: resp.StatusCode, Message: "failed to read response", Err: err}
		}

		c.log.Debug("platform response", "status", resp.StatusCode, "bytes", len(respBody))

		if resp.StatusCode >= 400 {
			perr := &PlatformError{
				Platform: c.platform,
				Status:   resp.StatusCode,
				Message:  fmt.Sprintf("%s %s rejected", method, path),
				Detail:   c.errorDetail(respBody),
			}
			if resp.StatusCode == http.StatusTooManyRequests {
				lastErr = perr
				continue
			}
			c.log.Error("platform returned error", "status", resp.StatusCode, "detail", perr.Detail)
			return nil, perr
		}

		return respBody, nil
	}

	c.log.Error("retries exhausted", "method", method, "path", path, "error", lastErr)
	return nil, lastErr
}
