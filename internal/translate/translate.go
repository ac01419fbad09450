// Package translate holds the contract shared by the platform translators.
// Each platform package exposes a pure payload builder and a Publisher that
// runs the platform's creation protocol.
package translate

import (
	"context"
	"fmt"
	"net/http"

	"formsmith/internal/model"
)

// Translator publishes a canonical form to one external platform
type Translator interface {
	Platform() model.Platform
	Publish(ctx context.Context, form *model.Form, creds Credentials) (*Result, error)
}

// Credentials carries per-request inputs. Server-side platform tokens come
// from configuration, not from here.
type Credentials struct {
	// AccessToken is a delegated user token (Google)
	AccessToken string
	// CreateSpreadsheet asks for a linked response sheet where supported
	CreateSpreadsheet bool
}

// Result is what a successful publish returns
type Result struct {
	ID             string              `json:"id"`
	URL            string              `json:"url"`
	SpreadsheetID  string              `json:"spreadsheetId,omitempty"`
	SpreadsheetURL string              `json:"spreadsheetUrl,omitempty"`
	Items          []model.ItemOutcome `json:"items,omitempty"`
}

// Failed counts item outcomes that did not make it onto the platform
func (r *Result) Failed() int {
	n := 0
	for _, it := range r.Items {
		if !it.OK {
			n++
		}
	}
	return n
}

// PlaceholderOptions is used for choice questions that have no options
func PlaceholderOptions() []string {
	return []string{"Option 1", "Option 2"}
}

// ChoiceLabels returns the question's options, or the placeholders when empty
func ChoiceLabels(q model.Question) []string {
	if len(q.Options) == 0 {
		return PlaceholderOptions()
	}
	return q.Options
}

// PlatformError is returned for every failure talking to a platform,
// including timeouts and network errors (Status 0).
type PlatformError struct {
	Platform model.Platform
	Status   int
	Message  string
	Detail   string
	Err      error
}

func (e *PlatformError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s: %s", e.Platform, e.Message)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PlatformError) Unwrap() error { return e.Err }

// HTTPStatus is the status to surface to callers: the platform's own status
// when it reported one, else 500.
func (e *PlatformError) HTTPStatus() int {
	if e.Status >= 400 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Details is the platform's own error text when present, else the cause
func (e *PlatformError) Details() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// NotConfigured reports a platform whose server-side token is missing
func NotConfigured(p model.Platform) *PlatformError {
	return &PlatformError{
		Platform: p,
		Status:   http.StatusServiceUnavailable,
		Message:  "platform is not configured",
	}
}
