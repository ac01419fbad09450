// Package surveymonkey publishes forms through the SurveyMonkey v3 API:
// survey shell, one page of questions, then a weblink collector.
package surveymonkey

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"formsmith/internal/logger"
	"formsmith/internal/model"
	"formsmith/internal/translate"
)

const (
	DefaultBaseURL = "https://api.surveymonkey.com/v3"

	defaultThankYou = "Thank you for completing our survey!"
)

// Publisher creates surveys on SurveyMonkey
type Publisher struct {
	client   *translate.Client
	thankYou string
	log      *logger.Logger
}

// NewPublisher creates a SurveyMonkey publisher using a server-side token
func NewPublisher(baseURL, token string, timeout time.Duration, maxRetries int, log *logger.Logger) *Publisher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{
		client: translate.NewClient(translate.ClientConfig{
			Platform:    model.PlatformSurveyMonkey,
			BaseURL:     strings.TrimRight(baseURL, "/"),
			Token:       token,
			Timeout:     timeout,
			MaxRetries:  maxRetries,
			ErrorDetail: errorDetail,
		}, log),
		thankYou: defaultThankYou,
		log:      log.With("component", "surveymonkey"),
	}
}

func (p *Publisher) Platform() model.Platform { return model.PlatformSurveyMonkey }

// Publish runs the three dependent calls. A failed step aborts the sequence;
// there is no partial result.
func (p *Publisher) Publish(ctx context.Context, form *model.Form, _ translate.Credentials) (*translate.Result, error) {
	if !p.client.IsConfigured() {
		return nil, translate.NotConfigured(model.PlatformSurveyMonkey)
	}

	survey, err := p.CreateSurvey(ctx, form.Title)
	if err != nil {
		return nil, err
	}

	if _, err := p.CreatePage(ctx, survey.ID, BuildQuestions(form)); err != nil {
		return nil, err
	}

	collector, err := p.CreateCollector(ctx, survey.ID)
	if err != nil {
		return nil, err
	}

	p.log.Info("survey published", "surveyId", survey.ID, "url", collector.URL)
	return &translate.Result{ID: survey.ID, URL: collector.URL}, nil
}

// CreateSurvey creates an empty survey shell
func (p *Publisher) CreateSurvey(ctx context.Context, title string) (*SurveyResponse, error) {
	p.log.Debug("creating survey", "title", title)

	var survey SurveyResponse
	if err := p.client.PostJSON(ctx, "/surveys", SurveyCreateRequest{Title: title, Language: "en"}, &survey); err != nil {
		p.log.Error("failed to create survey", "error", err)
		return nil, err
	}

	p.log.Debug("survey created", "id", survey.ID)
	return &survey, nil
}

// CreatePage adds the single page carrying every question
func (p *Publisher) CreatePage(ctx context.Context, surveyID string, questions []Question) (*PageResponse, error) {
	path := fmt.Sprintf("/surveys/%s/pages", surveyID)
	req := PageCreateRequest{
		Title:       "Page 1",
		Description: "",
		Position:    1,
		Questions:   questions,
	}

	var page PageResponse
	if err := p.client.PostJSON(ctx, path, req, &page); err != nil {
		p.log.Error("failed to create page", "surveyId", surveyID, "error", err)
		return nil, err
	}
	return &page, nil
}

// CreateCollector creates a weblink collector for a survey
func (p *Publisher) CreateCollector(ctx context.Context, surveyID string) (*CollectorResponse, error) {
	path := fmt.Sprintf("/surveys/%s/collectors", surveyID)
	req := CollectorCreateRequest{
		Type:            "weblink",
		Name:            "Web Link",
		ThankYouMessage: p.thankYou,
	}

	var collector CollectorResponse
	if err := p.client.PostJSON(ctx, path, req, &collector); err != nil {
		p.log.Error("failed to create collector", "surveyId", surveyID, "error", err)
		return nil, err
	}
	return &collector, nil
}

// errorDetail reads error.message from a SurveyMonkey error payload
func errorDetail(body []byte) string {
	var payload struct {
		Error struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(string(body))
}
