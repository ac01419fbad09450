package formgen

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"formsmith/internal/model"
)

// Normalize turns raw model text into a canonical form. Individual question
// fields are repaired, never dropped, so len(questions) always equals the
// length of the model's questions array.
func Normalize(raw string) (*model.Form, error) {
	body := extractJSON(raw)

	var doc interface{}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, &ParseError{Err: err}
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, &SchemaError{Field: "$", Reason: "is not an object"}
	}
	title, ok := obj["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return nil, &SchemaError{Field: "title", Reason: "must be a non-empty string"}
	}
	rawQuestions, ok := obj["questions"].([]interface{})
	if !ok {
		return nil, &SchemaError{Field: "questions", Reason: "must be an array"}
	}

	questions := make([]model.Question, 0, len(rawQuestions))
	for _, rq := range rawQuestions {
		questions = append(questions, normalizeQuestion(rq))
	}

	return &model.Form{
		Title:       title,
		Description: stringOr(obj["description"], ""),
		Questions:   questions,
		Source:      model.FormSourceAI,
	}, nil
}

// extractJSON strips code fences and surrounding chatter around a JSON object
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

func normalizeQuestion(raw interface{}) model.Question {
	obj, _ := raw.(map[string]interface{})

	q := model.Question{
		Text:        stringOr(obj["text"], model.UntitledQuestion),
		Type:        model.CoerceQuestionType(stringOr(obj["type"], "")),
		Required:    truthy(obj["required"]),
		Description: stringOr(obj["description"], ""),
		Low:         positiveIntOr(obj["low"], model.DefaultScaleLow),
		High:        positiveIntOr(obj["high"], model.DefaultScaleHigh),
		LowLabel:    stringOr(obj["lowLabel"], ""),
		HighLabel:   stringOr(obj["highLabel"], ""),
		Rows:        stringList(obj["rows"]),
		Columns:     stringList(obj["columns"]),
	}
	switch {
	case q.Low > q.High:
		q.Low, q.High = q.High, q.Low
	case q.Low == q.High:
		q.Low, q.High = model.DefaultScaleLow, model.DefaultScaleHigh
	}
	if id, ok := obj["id"].(string); ok {
		q.ID = id
	}
	if q.Type.IsChoice() {
		q.Options = stringList(obj["options"])
	}
	return q
}

// truthy follows JavaScript truthiness for decoded JSON values
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// stringOr returns v as a string when it is a truthy scalar, else def
func stringOr(v interface{}, def string) string {
	if !truthy(v) {
		return def
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return def
	}
	s := castString(v)
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func castString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, castString(item))
	}
	return out
}

func positiveIntOr(v interface{}, def int) int {
	switch t := v.(type) {
	case float64:
		if t >= 1 && t <= math.MaxInt32 {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n >= 1 {
			return n
		}
	}
	return def
}
