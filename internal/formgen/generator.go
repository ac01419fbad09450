package formgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"formsmith/internal/config"
	"formsmith/internal/logger"
	"formsmith/internal/model"
)

// Generator produces a canonical form from a natural-language description
// using Gemini, with the keyword fallback whenever the model cannot be used.
type Generator struct {
	config *config.AIConfig
	client *http.Client
	log    *logger.Logger
}

// NewGenerator creates a generator for the given AI configuration
func NewGenerator(cfg *config.AIConfig, log *logger.Logger) *Generator {
	return &Generator{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		log: log.With("component", "formgen"),
	}
}

// Generate returns the model's form, or the fallback form when the model is
// disabled, unreachable or returns unusable output.
func (g *Generator) Generate(ctx context.Context, prompt string) (*model.Form, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if !g.config.IsEnabled() {
		g.log.Debug("gemini disabled, using fallback generator")
		return Fallback(prompt), nil
	}

	text, err := g.callGemini(ctx, g.config.Models.FormGen, buildFormPrompt(prompt))
	if err != nil {
		g.log.Warn("gemini call failed, using fallback generator", "error", err)
		return Fallback(prompt), nil
	}

	form, err := Normalize(text)
	if err != nil {
		g.log.Warn("gemini output unusable, using fallback generator", "error", err, "raw", truncate(text, 500))
		return Fallback(prompt), nil
	}

	g.log.Info("form generated", "title", form.Title, "questions", len(form.Questions))
	return form, nil
}

// callGemini makes a request to the Gemini API
func (g *Generator) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", g.config.ModelEndpoint(modelName), g.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gemini returned %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func buildFormPrompt(description string) string {
	return fmt.Sprintf(`You are a form creation assistant. Create a form based on this description: %q

Respond ONLY with a JSON object in this exact format, with no additional text:
{
  "title": "A clear, concise title for the form",
  "description": "A detailed description of the form's purpose",
  "questions": [
    {
      "text": "The actual question text",
      "type": "short_answer|paragraph|multiple-choice|checkbox|dropdown|file_upload|rating|grid|checkbox_grid|date|time|email",
      "required": true,
      "description": "Optional help text for the question",
      "options": ["Option 1", "Option 2"],
      "low": 1,
      "high": 5,
      "lowLabel": "",
      "highLabel": "",
      "rows": [],
      "columns": []
    }
  ]
}

"options" is only for multiple-choice, checkbox and dropdown questions.
"low", "high", "lowLabel" and "highLabel" are only for rating questions.
"rows" and "columns" are only for grid and checkbox_grid questions.
Always include email and name fields as required questions.
Create appropriate questions based on the description.`, description)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
